package main

import (
	"fmt"
	"io"
	"strings"

	"deckwright/internal/logging"
	"deckwright/internal/pipeline"
)

// progressRenderer draws pipeline events. Terminals get a single line that
// is rewritten in place; other writers get one line per sampled event.
type progressRenderer struct {
	out     io.Writer
	live    bool
	sampler *logging.ProgressSampler
	width   int
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{
		out:     out,
		live:    shouldColorize(out),
		sampler: logging.NewProgressSampler(5),
	}
}

func (p *progressRenderer) render(event pipeline.Event) {
	line := formatProgress(event)
	terminal := event.Err != nil || event.Label == pipeline.LabelDone || event.Label == pipeline.LabelFailed

	if !p.live {
		if terminal || p.sampler.ShouldLog(event.Percent, event.Label) {
			fmt.Fprintln(p.out, line)
		}
		return
	}

	pad := ""
	if n := len(line); n < p.width {
		pad = strings.Repeat(" ", p.width-n)
	}
	p.width = len(line)
	if terminal {
		kind := statusOK
		if event.Err != nil {
			kind = statusError
		}
		fmt.Fprintf(p.out, "\r%s%s%s%s\n", statusKindColor(kind), line, ansiReset, pad)
		return
	}
	fmt.Fprintf(p.out, "\r%s%s", line, pad)
}

func formatProgress(event pipeline.Event) string {
	line := fmt.Sprintf("[%3d%%] %s", event.Percent, event.Label)
	if event.Err != nil {
		line += ": " + event.Err.Error()
	}
	return line
}
