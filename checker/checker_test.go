package checker

import (
	"testing"

	"github.com/aspellgo/aspellgo/affix"
	"github.com/aspellgo/aspellgo/convert"
	"github.com/aspellgo/aspellgo/data"
	"github.com/aspellgo/aspellgo/dict"
	"github.com/aspellgo/aspellgo/filter"
	"github.com/aspellgo/aspellgo/lang"
	"github.com/aspellgo/aspellgo/speller"
)

func mustChecker(t *testing.T) *Checker {
	t.Helper()
	l, err := lang.Setup(lang.Bundle{Dat: data.EnLang, Charset: data.EnCharset, Phonet: data.EnPhonet})
	if err != nil {
		t.Fatalf("lang.Setup: %v", err)
	}
	main, err := dict.NewReadonly("en.wl", l, data.EnWordlist)
	if err != nil {
		t.Fatalf("dict.NewReadonly: %v", err)
	}
	aff, err := affix.Parse(data.EnAffix)
	if err != nil {
		t.Fatalf("affix.Parse: %v", err)
	}
	sp := speller.New(l, main, aff, speller.DefaultConfig())
	return New(l, &convert.Pipeline{Lang: l}, filter.New(), sp)
}

func TestProcessAndNextProducesTokens(t *testing.T) {
	c := mustChecker(t)
	if err := c.Process("I has a car.", 0, "doc1"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	var words []string
	for {
		tk, ok := c.Next()
		if !ok {
			break
		}
		words = append(words, tk.Word)
	}
	want := []string{"I", "has", "a", "car"}
	if len(words) != len(want) {
		t.Fatalf("got %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestNextMisspellingSkipsKnownWords(t *testing.T) {
	c := mustChecker(t)
	if err := c.Process("I has a car.", 0, "doc1"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	tk, ok := c.NextMisspelling()
	if !ok {
		t.Fatal("expected a misspelling")
	}
	if tk.Word != "has" {
		t.Fatalf("first misspelling = %q, want %q", tk.Word, "has")
	}
	if tk.Begin != 2 || tk.End != 5 {
		t.Fatalf("offsets = [%d,%d), want [2,5)", tk.Begin, tk.End)
	}
}

func TestReplaceWholeSegment(t *testing.T) {
	c := mustChecker(t)
	if err := c.Process("has", 0, "w"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, ok := c.NextMisspelling(); !ok {
		t.Fatal("expected a misspelling")
	}
	if err := c.Replace("have"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	tk, ok := c.Next()
	if !ok {
		t.Fatal("expected a token after replace")
	}
	if tk.Word != "have" {
		t.Fatalf("token after replace = %q, want %q", tk.Word, "have")
	}
}

func TestReplaceAdjustsSubsequentOffsets(t *testing.T) {
	c := mustChecker(t)
	if err := c.Process("I has a car.", 0, "doc1"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	tk, ok := c.NextMisspelling()
	if !ok || tk.Word != "has" {
		t.Fatalf("expected misspelling %q, got %v ok=%v", "has", tk, ok)
	}
	if err := c.Replace("have"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	var last Token
	for {
		next, ok := c.Next()
		if !ok {
			break
		}
		last = next
	}
	if last.Word != "car" {
		t.Fatalf("last token = %q, want %q", last.Word, "car")
	}
	// "have" is one byte longer than "has"; "car" shifts right by one byte.
	if last.Begin != 9 {
		t.Fatalf("car offset after replace = %d, want 9", last.Begin)
	}
}

func TestEmptyProcessProducesNoToken(t *testing.T) {
	c := mustChecker(t)
	if err := c.Process("", 0, "empty"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, ok := c.Next(); ok {
		t.Fatal("expected no token from an empty string")
	}
}

func TestSpanStringsControlsCrossSegmentTokens(t *testing.T) {
	c := mustChecker(t)
	c.SpanStrings = true
	if err := c.Process("ca", 0, "a"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := c.Process("t", 0, "b"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	tk, ok := c.Next()
	if !ok {
		t.Fatal("expected a spanning token")
	}
	if tk.Word != "cat" {
		t.Fatalf("spanning token = %q, want %q", tk.Word, "cat")
	}
}

func TestStringFreedNotFiredForReusedSegment(t *testing.T) {
	c := mustChecker(t)
	var freed []any
	c.StringFreed = func(which Which) { freed = append(freed, which) }
	if err := c.Process("has", 0, "w"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, ok := c.NextMisspelling(); !ok {
		t.Fatal("expected a misspelling")
	}
	if err := c.Replace("have"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(freed) != 0 {
		t.Fatalf("StringFreed should not fire for a reused (shape-1) segment, got %v", freed)
	}
}
