package pipeline

import "sync"

// Progress labels in the order a run reports them.
const (
	LabelPlanning     = "Planning structure"
	LabelWriting      = "Writing manuscript"
	LabelReviewing    = "Reviewing manuscript"
	LabelFactChecking = "Fact-checking"
	LabelSlides       = "Creating slides"
	LabelNotes        = "Adding speaker notes"
	LabelImages       = "Selecting images"
	LabelExporting    = "Exporting files"
	LabelDone         = "Done"
	LabelFailed       = "Failed"
)

// Progress percentages paired with the labels above.
const (
	PercentPlanning     = 5
	PercentWriting      = 15
	PercentReviewing    = 25
	PercentApproved     = 35
	PercentFactChecking = 40
	PercentSlides       = 55
	PercentSlideRetry   = 60
	PercentNotes        = 70
	PercentImages       = 80
	PercentExporting    = 92
	PercentDone         = 100
)

// Event is one progress report. The last event of a run is either
// (LabelDone, 100) or carries Err.
type Event struct {
	Label   string
	Percent int
	Err     error
}

// progressBuffer bounds the events a run can report. A run emits one event
// per stage plus the approval, retry and terminal events, well under this.
const progressBuffer = 32

// progress delivers events on a buffered channel so the pipeline never
// blocks on a slow or absent consumer and no goroutine outlives the run.
// Percent never decreases. The last slot is reserved for the terminal
// event; the channel is closed right after it.
type progress struct {
	mu     sync.Mutex
	last   int
	closed bool
	out    chan Event
}

func newProgress() *progress {
	return &progress{out: make(chan Event, progressBuffer)}
}

func (p *progress) emit(label string, percent int) {
	p.push(Event{Label: label, Percent: percent}, false)
}

func (p *progress) finish(err error) {
	if err != nil {
		p.push(Event{Label: LabelFailed, Err: err}, true)
		return
	}
	p.push(Event{Label: LabelDone, Percent: PercentDone}, true)
}

func (p *progress) push(ev Event, terminal bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if !terminal && len(p.out) >= cap(p.out)-1 {
		return
	}
	ev.Percent = max(ev.Percent, p.last)
	p.last = ev.Percent
	p.out <- ev
	if terminal {
		p.closed = true
		close(p.out)
	}
}
