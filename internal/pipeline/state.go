package pipeline

import (
	"errors"
	"fmt"
)

// State is the position of a run in the pipeline.
type State string

const (
	StatePending        State = "pending"
	StateOutlined       State = "outlined"
	StateDrafted        State = "drafted"
	StateReviewed       State = "reviewed"
	StateFactChecked    State = "fact_checked"
	StateSlideExtracted State = "slide_extracted"
	StateNotesEnriched  State = "notes_enriched"
	StateImageEnriched  State = "image_enriched"
	StateExported       State = "exported"
	StateFailed         State = "failed"
)

var stateOrder = []State{
	StatePending,
	StateOutlined,
	StateDrafted,
	StateReviewed,
	StateFactChecked,
	StateSlideExtracted,
	StateNotesEnriched,
	StateImageEnriched,
	StateExported,
}

// ErrInvalidTransition is returned when a run is moved out of order.
var ErrInvalidTransition = errors.New("invalid state transition")

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateExported || s == StateFailed
}

// ValidTransition reports whether a run may move from one state to another.
// Only the next state in order and failed are reachable from a non-terminal
// state.
func ValidTransition(from, to State) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for i, state := range stateOrder {
		if state == from {
			return i+1 < len(stateOrder) && stateOrder[i+1] == to
		}
	}
	return false
}

type machine struct {
	state State
}

func newMachine() *machine {
	return &machine{state: StatePending}
}

func (m *machine) advance(to State) error {
	if !ValidTransition(m.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	return nil
}
