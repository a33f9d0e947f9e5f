package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"deckwright/internal/generation"
)

// Matcher selects which scripted reply answers a request.
type Matcher func(req generation.Request) bool

// PromptContains matches requests whose prompt or system text contains s.
func PromptContains(s string) Matcher {
	return func(req generation.Request) bool {
		return strings.Contains(req.Prompt, s) || strings.Contains(req.System, s)
	}
}

// ModelIs matches requests for a specific model.
func ModelIs(model string) Matcher {
	return func(req generation.Request) bool { return req.Model == model }
}

// ImageIs matches vision requests for a specific image URL.
func ImageIs(url string) Matcher {
	return func(req generation.Request) bool { return req.ImageURL == url }
}

// Any matches every request.
func Any() Matcher {
	return func(generation.Request) bool { return true }
}

type reply struct {
	match     Matcher
	raw       string
	err       error
	remaining int // 0 means unlimited
}

// FakeGenerator answers Generate calls from scripted replies and records every
// request. Rules are tried in registration order; a rule registered with Once
// is consumed after its first use. It is safe for concurrent use.
type FakeGenerator struct {
	mu      sync.Mutex
	replies []*reply
	calls   []generation.Request
}

// NewFakeGenerator returns an empty script. Unmatched requests fail with a
// transport error.
func NewFakeGenerator() *FakeGenerator {
	return &FakeGenerator{}
}

// On answers matching requests with the raw reply text.
func (f *FakeGenerator) On(match Matcher, raw string) *FakeGenerator {
	return f.add(&reply{match: match, raw: raw})
}

// OnValue answers matching requests with v encoded as JSON.
func (f *FakeGenerator) OnValue(match Matcher, v any) *FakeGenerator {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testsupport: encode scripted reply: %v", err))
	}
	return f.On(match, string(encoded))
}

// Once answers the next matching request only.
func (f *FakeGenerator) Once(match Matcher, raw string) *FakeGenerator {
	return f.add(&reply{match: match, raw: raw, remaining: 1})
}

// OnceValue answers the next matching request with v encoded as JSON.
func (f *FakeGenerator) OnceValue(match Matcher, v any) *FakeGenerator {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testsupport: encode scripted reply: %v", err))
	}
	return f.Once(match, string(encoded))
}

// Fail makes matching requests fail with a transport error wrapping err.
func (f *FakeGenerator) Fail(match Matcher, err error) *FakeGenerator {
	if err == nil {
		err = errors.New("scripted failure")
	}
	return f.add(&reply{match: match, err: err})
}

// FailOnce fails the next matching request only.
func (f *FakeGenerator) FailOnce(match Matcher, err error) *FakeGenerator {
	if err == nil {
		err = errors.New("scripted failure")
	}
	return f.add(&reply{match: match, err: err, remaining: 1})
}

func (f *FakeGenerator) add(r *reply) *FakeGenerator {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, r)
	return f
}

// Generate implements generation.Generator.
func (f *FakeGenerator) Generate(ctx context.Context, req generation.Request, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", generation.ErrTransport, err)
	}
	raw, err := f.next(req)
	if err != nil {
		return fmt.Errorf("%w: %w", generation.ErrTransport, err)
	}
	return generation.Decode(raw, req, out)
}

func (f *FakeGenerator) next(req generation.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	for _, r := range f.replies {
		if r.remaining < 0 || !r.match(req) {
			continue
		}
		if r.remaining > 0 {
			r.remaining--
			if r.remaining == 0 {
				r.remaining = -1
			}
		}
		return r.raw, r.err
	}
	return "", fmt.Errorf("no scripted reply for prompt %.60q", req.Prompt)
}

// Calls returns a copy of every request seen so far.
func (f *FakeGenerator) Calls() []generation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generation.Request(nil), f.calls...)
}

// CallCount returns how many recorded requests satisfy match.
func (f *FakeGenerator) CallCount(match Matcher) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if match(call) {
			n++
		}
	}
	return n
}
