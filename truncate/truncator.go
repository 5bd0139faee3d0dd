package truncate

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/promptkit/tokens"
)

// Strategy defines which part of the text is dropped.
type Strategy int

const (
	// FromEnd keeps the beginning of the text (default).
	FromEnd Strategy = iota

	// FromMiddle keeps the beginning and the end.
	FromMiddle

	// FromStart keeps the end of the text.
	FromStart
)

// DefaultMarker is put where content was removed.
const DefaultMarker = "[...]"

// String returns "end", "middle" or "start".
func (s Strategy) String() string {
	switch s {
	case FromMiddle:
		return "middle"
	case FromStart:
		return "start"
	default:
		return "end"
	}
}

// ParseStrategy parses "end", "middle" or "start". Empty means FromEnd.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "end":
		return FromEnd, nil
	case "middle":
		return FromMiddle, nil
	case "start":
		return FromStart, nil
	default:
		return FromEnd, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Truncator shortens text to a token limit, cutting at line boundaries
// when it can. A Truncator is immutable; the With methods return copies.
type Truncator struct {
	counter  tokens.Counter
	strategy Strategy
	marker   string
}

// New creates a truncator with the estimating counter and DefaultMarker.
func New(strategy Strategy) *Truncator {
	return &Truncator{
		counter:  tokens.NewEstimatingCounter(),
		strategy: strategy,
		marker:   DefaultMarker,
	}
}

// WithCounter returns a copy using counter.
func (t *Truncator) WithCounter(counter tokens.Counter) *Truncator {
	cp := *t
	cp.counter = counter
	return &cp
}

// WithMarker returns a copy using marker in place of removed content.
func (t *Truncator) WithMarker(marker string) *Truncator {
	cp := *t
	cp.marker = marker
	return &cp
}

// Strategy returns the truncation strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Marker returns the removal marker.
func (t *Truncator) Marker() string {
	return t.marker
}

// Truncate reduces text to at most maxTokens, marker included.
// Returns the result and whether anything was removed.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	if t.fits(text, maxTokens) {
		return text, false
	}
	if !t.fits(t.marker, maxTokens) {
		return t.marker, true
	}

	switch t.strategy {
	case FromStart:
		return t.keepTail(text, maxTokens), true
	case FromMiddle:
		return t.keepEnds(text, maxTokens), true
	default:
		return t.keepHead(text, maxTokens), true
	}
}

func (t *Truncator) fits(text string, maxTokens int) bool {
	return t.counter.Count(text) <= maxTokens
}
