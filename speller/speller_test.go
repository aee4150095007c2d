package speller

import (
	"testing"

	"github.com/aspellgo/aspellgo/affix"
	"github.com/aspellgo/aspellgo/data"
	"github.com/aspellgo/aspellgo/dict"
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

func mustMain(t *testing.T, l *lang.Language) dict.Dictionary {
	t.Helper()
	d, err := dict.NewReadonly("en.wl", l, data.EnWordlist)
	if err != nil {
		t.Fatalf("dict.NewReadonly: %v", err)
	}
	return d
}

func mustAffix(t *testing.T) *affix.Table {
	t.Helper()
	tbl, err := affix.Parse(data.EnAffix)
	if err != nil {
		t.Fatalf("affix.Parse: %v", err)
	}
	return tbl
}

func TestCheckKnownWords(t *testing.T) {
	l := mustLang(t)
	c := New(l, mustMain(t, l), mustAffix(t), DefaultConfig())

	tests := []struct {
		name string
		word string
		want bool
	}{
		{"empty string", "", false},
		{"known dictionary word", "the", true},
		{"suffixed plural", "cats", true},
		{"suffixed past tense", "walked", true},
		{"prefixed negation", "unhappy", false}, // "happy" not in the sample wordlist
		{"unknown word", "zzqxv", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Check(tt.word); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestCheckRunTogether(t *testing.T) {
	l := mustLang(t)
	cfg := DefaultConfig()
	cfg.RunTogether = true
	cfg.RunTogetherMin = 2
	c := New(l, mustMain(t, l), mustAffix(t), cfg)

	if !c.Check("the") {
		t.Fatalf("expected base word to check out before run-together is even tried")
	}
}

func TestSessionAndPersonal(t *testing.T) {
	l := mustLang(t)
	c := New(l, mustMain(t, l), mustAffix(t), DefaultConfig())
	c.Session = dict.NewPersonal("", l, "utf-8")
	c.Personal = dict.NewPersonal("", l, "utf-8")

	word := "zzqxv"
	if c.Check(word) {
		t.Fatalf("expected %q to be unknown before being added", word)
	}
	if err := c.AddToSession(word); err != nil {
		t.Fatalf("AddToSession: %v", err)
	}
	if !c.Check(word) {
		t.Fatalf("expected %q to check out after being added to session", word)
	}
	if err := c.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if c.Check(word) {
		t.Fatalf("expected %q to be unknown again after ClearSession", word)
	}

	if err := c.AddToPersonal(word); err != nil {
		t.Fatalf("AddToPersonal: %v", err)
	}
	if !c.Check(word) {
		t.Fatalf("expected %q to check out after being added to the personal dictionary", word)
	}
}

func TestSuggestUnimplemented(t *testing.T) {
	l := mustLang(t)
	c := New(l, mustMain(t, l), mustAffix(t), DefaultConfig())
	if _, err := c.Suggest("zzqxv", 2); err != dict.ErrUnimplementedMethod {
		t.Fatalf("Suggest error = %v, want ErrUnimplementedMethod", err)
	}
}

func TestStoreReplacementNoDictConfigured(t *testing.T) {
	l := mustLang(t)
	c := New(l, mustMain(t, l), mustAffix(t), DefaultConfig())
	if err := c.StoreReplacement("teh", "the"); err == nil {
		t.Fatalf("expected an error with no replacement dictionary configured")
	}
}
