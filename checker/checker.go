// Package checker implements the Document Checker: a segment graph over an
// input document supporting incremental replace and callback-driven refill.
//
// The checker lets a caller interleave Process (feed more source text),
// NextMisspelling (advance the cursor), and Replace (splice corrected text
// in place) without re-scanning unchanged regions, incrementally
// rescanning only the segments a replacement actually touched.
package checker

import (
	"errors"

	"github.com/aspellgo/aspellgo/convert"
	"github.com/aspellgo/aspellgo/filter"
	"github.com/aspellgo/aspellgo/lang"
	"github.com/aspellgo/aspellgo/speller"
	"github.com/aspellgo/aspellgo/tokenizer"
)

// Which is the caller-opaque tag identifying a source string, echoed back
// on every Token and on StringFreed.
type Which any

// Token is a word span reported to the caller, with byte offsets already
// translated into the coordinate space of the original source string named
// by Which.
type Token struct {
	Which Which
	Word  string
	Begin int // byte offset in the original source string
	End   int // byte offset in the original source string (exclusive)
}

// NeedMoreFunc is invoked when the cursor runs off the end of the segment
// graph. An implementation that has more text for which should call
// Process and return true; returning false ends the document.
type NeedMoreFunc func(c *Checker, which Which) bool

// StringFreedFunc fires exactly once per source string, when the last
// segment carrying its id is freed, letting a caller that handed the
// checker a borrowed buffer reclaim it.
type StringFreedFunc func(which Which)

// segment is one contiguous slice of filtered internal text derived from
// exactly one source string submitted by the caller.
type segment struct {
	id     int
	which  Which
	data   lang.Text // sentinel-terminated
	offset int       // source-byte offset of this segment's first char
	ignore int       // prefix length (source bytes) to skip
	isSep  bool      // a word-spanning separator, not real source text

	prev, next *segment
}

// windowSeg is one segment backing the tokenizer's current scan buffer.
// When SpanStrings is false the window always holds exactly one segment;
// when true, Next may grow it across a segment boundary mid-token.
type windowSeg struct {
	seg       *segment
	unitStart int // index, within the tokenizer's text, of this segment's unit 0
	byteBase  int // byte offset, within the tokenizer's text, of this segment's unit 0
}

// Checker drives check/replace over a segment graph.
type Checker struct {
	l       *lang.Language
	conv    *convert.Pipeline
	filters *filter.Chain
	spell   *speller.Coordinator

	// SpanStrings, when false (the default), inserts a separator segment
	// between consecutive Process calls so the tokenizer never produces a
	// token straddling two source strings. When true, a token may span
	// the boundary between two Process calls.
	SpanStrings bool

	NeedMore    NeedMoreFunc
	StringFreed StringFreedFunc

	nextID int
	head, tail segment // sentinel list nodes; real segments sit between them

	tok    *tokenizer.Tokenizer
	window []windowSeg

	lastOwner  *segment        // segment owning the last token's start
	lastLocal  tokenizer.Token // token with indices local to lastOwner.data
	haveLast   bool
}

// New builds a Checker bound to l's conversion/filter pipeline and, if
// non-nil, a Coordinator used by NextMisspelling to skip correctly spelled
// tokens.
func New(l *lang.Language, conv *convert.Pipeline, filters *filter.Chain, spell *speller.Coordinator) *Checker {
	c := &Checker{l: l, conv: conv, filters: filters, spell: spell}
	c.Reset()
	return c
}

// Reset frees every segment and installs one empty segment: call this
// when starting a new document or when a stateful filter's state is
// otherwise compromised.
func (c *Checker) Reset() {
	c.head.next = &c.tail
	c.tail.prev = &c.head
	c.nextID = 1
	c.haveLast = false
	empty := &segment{id: 0, data: lang.Text{lang.Sentinel}}
	c.linkAfter(&c.head, empty)
	c.tok = tokenizer.New(c.l, empty.data)
	c.window = []windowSeg{{seg: empty}}
}

func (c *Checker) linkAfter(at, s *segment) {
	s.prev = at
	s.next = at.next
	at.next.prev = s
	at.next = s
}

// unlink removes s from the chain and, if it was the last segment carrying
// its id, fires StringFreed.
func (c *Checker) unlink(s *segment) {
	s.prev.next = s.next
	s.next.prev = s.prev
	if s.isSep {
		return
	}
	if !c.idStillPresent(s.id) && c.StringFreed != nil {
		c.StringFreed(s.which)
	}
}

func (c *Checker) idStillPresent(id int) bool {
	for s := c.head.next; s != &c.tail; s = s.next {
		if s.id == id {
			return true
		}
	}
	return false
}

// separator is a single-unit segment (a blank, non-letter char) that stops
// the tokenizer from producing a token spanning two source strings. The
// design calls for a pair of singleton separator segments; a single
// non-word unit already suffices to block spanning, so this implementation
// collapses the pair to one segment for simplicity.
func (c *Checker) separator() *segment {
	return &segment{id: -1, isSep: true, data: lang.Text{{Code: ' ', Width: 0}, lang.Sentinel}}
}

// Process appends a new source string to the tail of the segment list: it
// decodes and filters str into a freshly allocated Segment whose id is the
// next monotone value and whose offset is zero (segment-local).
func (c *Checker) Process(str string, ignore int, which Which) error {
	text, err := c.conv.DecodeEC([]byte(str))
	if err != nil {
		text = c.conv.Decode([]byte(str))
	}
	if c.filters != nil {
		text = c.filters.Process(filter.DecoderKind, text, 0, len(text))
		text = c.filters.Process(filter.FilterKind, text, 0, len(text))
	}
	seg := &segment{id: c.nextID, which: which, data: text, ignore: ignore}
	c.nextID++

	c.linkAfter(c.tail.prev, seg)
	if !c.SpanStrings {
		c.linkAfter(seg, c.separator())
		return nil
	}
	// Word-spanning: fold the new segment directly into the live scan
	// buffer (rather than waiting for the tokenizer to exhaust the
	// current one) so a token in progress can continue across the
	// boundary instead of being cut short by the old segment's sentinel.
	last := c.window[len(c.window)-1]
	newUnitStart := last.unitStart + len(last.seg.data) - 1 // exclude sentinel
	newByteBase := last.byteBase + sumWidth(last.seg.data)
	c.tok.Extend(seg.data)
	c.window = append(c.window, windowSeg{seg: seg, unitStart: newUnitStart, byteBase: newByteBase})
	return nil
}

// growWindow is called when the tokenizer has run out of data to scan. For
// SpanStrings it means the caller hasn't fed the continuation yet (Process
// folds new segments into the live buffer itself); for !SpanStrings it
// starts a fresh single-segment window on the next segment in the chain.
// Invokes NeedMore when the graph is exhausted; returns false when there
// is nothing more to scan.
func (c *Checker) growWindow() bool {
	last := c.window[len(c.window)-1]
	if last.seg.next == &c.tail {
		if c.NeedMore == nil || !c.NeedMore(c, last.seg.which) {
			return false
		}
		if last.seg.next == &c.tail {
			return false // NeedMore didn't actually supply more text
		}
	}
	if c.SpanStrings {
		return true // Process already extended c.tok and c.window
	}
	next := last.seg.next
	c.tok = tokenizer.New(c.l, next.data)
	c.window = []windowSeg{{seg: next}}
	return true
}

// ownerOf returns the window segment owning unit index idx, and idx
// translated into that segment's own local coordinate space.
func (c *Checker) ownerOf(idx int) (windowSeg, int) {
	owner := c.window[0]
	for _, w := range c.window {
		if w.unitStart <= idx {
			owner = w
		} else {
			break
		}
	}
	return owner, idx - owner.unitStart
}

// Next advances to the next token in the document, regardless of whether
// it is correctly spelled.
func (c *Checker) Next() (Token, bool) {
	for {
		tk, ok := c.tok.Next()
		if !ok {
			if !c.growWindow() {
				return Token{}, false
			}
			continue
		}
		owner, localBegin := c.ownerOf(tk.Begin)
		localEnd := tk.End - owner.unitStart

		c.lastOwner = owner.seg
		c.lastLocal = tokenizer.Token{Word: tk.Word, Begin: localBegin, End: localEnd}
		c.haveLast = true

		begin := owner.seg.offset + (tk.BeginPos - owner.byteBase)
		end := begin + (tk.EndPos - tk.BeginPos)
		return Token{Which: owner.seg.which, Word: tk.Word, Begin: begin, End: end}, true
	}
}

// NextMisspelling advances like Next but skips tokens the bound Coordinator
// considers correctly spelled. With no Coordinator bound it behaves like
// Next.
func (c *Checker) NextMisspelling() (Token, bool) {
	for {
		tk, ok := c.Next()
		if !ok {
			return Token{}, false
		}
		if c.spell == nil || !c.spell.Check(tk.Word) {
			return tk, true
		}
	}
}

// errNoCurrentToken is returned by Replace when called before any Next or
// NextMisspelling call produced a token.
var errNoCurrentToken = errors.New("checker: no current token to replace")

// errCrossSegmentReplace is returned by Replace for a token whose span
// crosses two segments' own data buffers. Such a token only arises when
// SpanStrings is true; where its splice should land is ambiguous, so
// Replace declines it rather than guess at a splicing behavior.
var errCrossSegmentReplace = errors.New("checker: replace of a cross-segment token is not supported")

// Replace splices newText in place of the last token returned by Next or
// NextMisspelling, handling both the whole-segment and interior-split
// shapes, and re-anchors the cursor at the start of the replacement.
func (c *Checker) Replace(newText string) error {
	if !c.haveLast {
		return errNoCurrentToken
	}
	seg := c.lastOwner
	tok := c.lastLocal
	if tok.End > len(seg.data)-1 {
		return errCrossSegmentReplace
	}

	repl, err := c.conv.DecodeEC([]byte(newText))
	if err != nil {
		repl = c.conv.Decode([]byte(newText))
	}
	if c.filters != nil {
		repl = c.filters.Process(filter.FilterKind, repl, 0, len(repl))
	}
	replBody := repl
	if n := len(replBody); n > 0 && replBody[n-1] == lang.Sentinel {
		replBody = replBody[:n-1]
	}
	oldWidth := sumWidth(seg.data[tok.Begin:tok.End])
	newWidth := sumWidth(replBody)
	delta := newWidth - oldWidth

	var newSeg *segment
	switch {
	case tok.Begin == 0 && tok.End == len(seg.data)-1:
		// Shape 1: token is the whole segment. Reuse the same Segment
		// object, refilling its data.
		seg.data = append(append(lang.Text{}, replBody...), lang.Sentinel)
		newSeg = seg
	default:
		// Shape 2: token lies within a segment (at an edge or strictly
		// interior). Split into a prev/new/next triple; an edge token
		// leaves an empty (sentinel-only) prev or next fragment rather
		// than a genuinely dropped one, which keeps the id-presence
		// check below correct without a special case.
		prevData := append(lang.Text{}, seg.data[:tok.Begin]...)
		nextData := append(lang.Text{}, seg.data[tok.End:]...)
		prevSeg := &segment{id: seg.id, which: seg.which, data: append(prevData, lang.Sentinel), offset: seg.offset, ignore: seg.ignore}
		midSeg := &segment{id: seg.id, which: seg.which, data: append(append(lang.Text{}, replBody...), lang.Sentinel), offset: seg.offset + sumWidth(seg.data[:tok.Begin])}
		nextSeg := &segment{id: seg.id, which: seg.which, data: nextData, offset: seg.offset + sumWidth(seg.data[:tok.End])}
		c.linkAfter(seg.prev, prevSeg)
		c.linkAfter(prevSeg, midSeg)
		c.linkAfter(midSeg, nextSeg)
		c.unlink(seg)
		newSeg = midSeg
	}

	// Adjust offsets of every later segment sharing the same source id.
	for s := newSeg.next; s != &c.tail; s = s.next {
		if s.id == seg.id {
			s.offset += delta
		}
	}

	c.tok = tokenizer.New(c.l, newSeg.data)
	c.window = []windowSeg{{seg: newSeg}}
	c.haveLast = false
	return nil
}

func sumWidth(t lang.Text) int {
	n := 0
	for _, ch := range t {
		if ch == lang.Sentinel {
			break
		}
		n += int(ch.Width)
	}
	return n
}
