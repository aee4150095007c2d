package tokenizer

import (
	"testing"

	"github.com/aspellgo/aspellgo/convert"
	"github.com/aspellgo/aspellgo/data"
	"github.com/aspellgo/aspellgo/lang"
)

func mustLang(t *testing.T) *lang.Language {
	t.Helper()
	l, err := lang.Setup(lang.Bundle{Dat: data.EnLang, Charset: data.EnCharset, Phonet: data.EnPhonet})
	if err != nil {
		t.Fatalf("lang.Setup: %v", err)
	}
	return l
}

func decode(t *testing.T, l *lang.Language, s string) lang.Text {
	t.Helper()
	p := &convert.Pipeline{Lang: l}
	return p.Decode([]byte(s))
}

func words(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Word
	}
	return out
}

func TestWordsBasic(t *testing.T) {
	l := mustLang(t)
	text := decode(t, l, "The cat sat.")

	toks := Words(l, text)
	got := words(toks)
	want := []string{"The", "cat", "sat"}
	if len(got) != len(want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWordsSpecialCharsJoinWord(t *testing.T) {
	l := mustLang(t)
	text := decode(t, l, "don't stop-gap")

	toks := Words(l, text)
	got := words(toks)
	want := []string{"don't", "stop-gap"}
	if len(got) != len(want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWordsOffsetsCoverSource(t *testing.T) {
	l := mustLang(t)
	src := "one two"
	text := decode(t, l, src)

	toks := Words(l, text)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].BeginPos != 0 || toks[0].EndPos != 3 {
		t.Errorf("token 0 offsets = [%d,%d), want [0,3)", toks[0].BeginPos, toks[0].EndPos)
	}
	if toks[1].BeginPos != 4 || toks[1].EndPos != 7 {
		t.Errorf("token 1 offsets = [%d,%d), want [4,7)", toks[1].BeginPos, toks[1].EndPos)
	}
}

func TestWordsEmptyOrAllWhitespace(t *testing.T) {
	l := mustLang(t)
	for _, in := range []string{"", "   ", "...", "  \t\n"} {
		text := decode(t, l, in)
		if toks := Words(l, text); len(toks) != 0 {
			t.Errorf("Words(%q) = %v, want none", in, toks)
		}
	}
}

func TestResetRewindsCursor(t *testing.T) {
	l := mustLang(t)
	text := decode(t, l, "alpha beta")

	tk := New(l, text)
	first, ok := tk.Next()
	if !ok || first.Word != "alpha" {
		t.Fatalf("first token = %+v, ok=%v", first, ok)
	}

	tk.Reset(nil)
	again, ok := tk.Next()
	if !ok || again.Word != "alpha" {
		t.Fatalf("after Reset, first token = %+v, ok=%v", again, ok)
	}
}
