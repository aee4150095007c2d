// Package filter implements the Filter Chain: an ordered
// pipeline of Decoder, Filter, and Encoder stages that runs over a
// lang.Text segment between tokenization passes.
//
// Stages are sorted by a declared order key and run front to back; each
// stage is pluggable rather than a fixed rule sequence.
package filter

import (
	"fmt"
	"sort"

	"github.com/aspellgo/aspellgo/lang"
)

// Kind classifies where in the pipeline a Stage runs.
type Kind int

const (
	// DecoderKind stages run pre-tokenization, on raw internal units.
	DecoderKind Kind = iota
	// FilterKind stages run post-decode and may rewrite characters in place.
	FilterKind
	// EncoderKind stages run on output bytes before emission.
	EncoderKind
)

// Stage is one filter chain member. Order must be in (0,1); the chain
// sorts stages by this value.
type Stage interface {
	Name() string
	Kind() Kind
	Order() float64
	// Process runs the stage over text[begin:end], returning the
	// (possibly modified) full text. Implementations that blank content
	// must preserve the Width of every unit they zero out.
	Process(text lang.Text, begin, end int) lang.Text
}

// Error kinds names for filter setup failures.
var (
	ErrNoSuchFilter = fmt.Errorf("no_such_filter")
	ErrBadVersion   = fmt.Errorf("bad_version")
	ErrEmptyValue   = fmt.Errorf("empty_value")
)

// Chain is the ordered filter pipeline: reset, process,
// add_filter.
type Chain struct {
	stages []Stage
}

// New creates an empty chain.
func New() *Chain { return &Chain{} }

// AddFilter inserts s into the chain and re-sorts by Order.
func (c *Chain) AddFilter(s Stage) error {
	if s.Order() <= 0 || s.Order() >= 1 {
		return fmt.Errorf("%w: filter %q order %v must be in (0,1)", ErrBadVersion, s.Name(), s.Order())
	}
	c.stages = append(c.stages, s)
	sort.SliceStable(c.stages, func(i, j int) bool { return c.stages[i].Order() < c.stages[j].Order() })
	return nil
}

// Reset removes every stage from the chain.
func (c *Chain) Reset() { c.stages = nil }

// Stages returns the chain's stages in run order, for inspection/tests.
func (c *Chain) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Process runs every stage of kind k in order over text[begin:end],
// returning the resulting text).
func (c *Chain) Process(k Kind, text lang.Text, begin, end int) lang.Text {
	for _, s := range c.stages {
		if s.Kind() != k {
			continue
		}
		text = s.Process(text, begin, end)
	}
	return text
}

// Blank overwrites text[begin:end] with the charset's space byte while
// preserving each unit's Width, per the "overwrites with a space
// character but keeps the width" contract. This is what lets the document
// checker translate a filtered position back to a source-byte offset by
// summing widths even after a filter has redacted content.
func Blank(text lang.Text, begin, end int) {
	for i := begin; i < end && i < len(text); i++ {
		text[i].Code = ' '
	}
}
