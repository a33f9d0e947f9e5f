package pipeline

import (
	"errors"
	"testing"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StatePending, StateOutlined, true},
		{StateOutlined, StateDrafted, true},
		{StateImageEnriched, StateExported, true},
		{StatePending, StateDrafted, false},
		{StateReviewed, StateDrafted, false},
		{StateReviewed, StateReviewed, false},
		{StatePending, StateFailed, true},
		{StateNotesEnriched, StateFailed, true},
		{StateExported, StateFailed, false},
		{StateFailed, StatePending, false},
		{StateFailed, StateFailed, false},
		{State("bogus"), StateOutlined, false},
	}
	for _, tc := range tests {
		if got := ValidTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("ValidTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestMachineWalksEveryState(t *testing.T) {
	m := newMachine()
	for _, next := range stateOrder[1:] {
		if err := m.advance(next); err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
	}
	if m.state != StateExported {
		t.Fatalf("expected exported, got %s", m.state)
	}
	if err := m.advance(StateFailed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition out of terminal state, got %v", err)
	}
}

func TestMachineRejectsSkippedStage(t *testing.T) {
	m := newMachine()
	err := m.advance(StateReviewed)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if m.state != StatePending {
		t.Fatalf("state changed on rejected transition: %s", m.state)
	}
}

func TestProgressIsMonotonicAndClosesAfterTerminal(t *testing.T) {
	p := newProgress()
	p.emit("a", 10)
	p.emit("b", 5)
	p.finish(nil)
	p.emit("late", 50)

	var got []Event
	for ev := range p.out {
		got = append(got, ev)
	}
	want := []Event{{Label: "a", Percent: 10}, {Label: "b", Percent: 10}, {Label: LabelDone, Percent: 100}}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestProgressFailureKeepsLastPercent(t *testing.T) {
	p := newProgress()
	cause := errors.New("boom")
	p.emit("a", 40)
	p.finish(cause)

	var last Event
	for ev := range p.out {
		last = ev
	}
	if last.Label != LabelFailed || last.Percent != 40 || !errors.Is(last.Err, cause) {
		t.Fatalf("unexpected terminal event: %+v", last)
	}
}

func TestNilProgressIsInert(t *testing.T) {
	var p *progress
	p.emit("a", 1)
	p.finish(nil)
}

func TestProgressNeverBlocksWithoutReader(t *testing.T) {
	p := newProgress()
	for i := range 3 * progressBuffer {
		p.emit("step", i)
	}
	p.finish(nil)

	var got []Event
	for ev := range p.out {
		got = append(got, ev)
	}
	if len(got) != progressBuffer {
		t.Fatalf("expected %d buffered events, got %d", progressBuffer, len(got))
	}
	if last := got[len(got)-1]; last.Label != LabelDone || last.Percent != PercentDone {
		t.Fatalf("terminal event lost: %+v", last)
	}
}
