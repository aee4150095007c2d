// Package speller implements the Speller Coordinator: the object that
// holds a Language handle, the ordered dictionary stack, and per-session
// state, and drives check/add/store-replacement.
//
// Check tries an exact dictionary-stack hit first, then affix expansion,
// then run-together splitting, returning true on the first of those to
// succeed.
package speller

import (
	"fmt"

	"github.com/aspellgo/aspellgo/affix"
	"github.com/aspellgo/aspellgo/dict"
	"github.com/aspellgo/aspellgo/lang"
)

// Config is the subset of coordinator behavior driven by configuration
//: run-together compounding and sensitive-compare mode.
type Config struct {
	IgnoreCase      bool
	IgnoreAccents   bool
	RunTogether     bool
	RunTogetherMin  int
	RunTogetherLimit int
}

// DefaultConfig matches the original's conservative defaults: run-together
// splitting off, case and accents both significant.
func DefaultConfig() Config {
	return Config{RunTogetherMin: 3, RunTogetherLimit: 4}
}

// Coordinator is the Speller.
type Coordinator struct {
	Lang   *lang.Language
	Main   dict.Dictionary   // the primary affix-compressed dictionary
	Extras []dict.Dictionary // optional extra dictionaries, consulted after Main
	Session *dict.Personal   // session word list, cleared by ClearSession
	Personal *dict.Personal  // persistent personal dictionary
	Repl   *dict.Replacement

	Affix *affix.Table

	Cfg Config
}

// New builds a Coordinator. Session and Personal may be nil (no session or
// personal dictionary configured); Repl may be nil (no replacement lookup).
func New(l *lang.Language, main dict.Dictionary, aff *affix.Table, cfg Config) *Coordinator {
	return &Coordinator{Lang: l, Main: main, Affix: aff, Cfg: cfg}
}

func (c *Coordinator) cmp() dict.SensitiveCompare {
	return dict.SensitiveCompare{Lang: c.Lang, CaseInsensitive: c.Cfg.IgnoreCase, IgnoreAccents: c.Cfg.IgnoreAccents}
}

// dictStack returns the ordered dictionaries check consults: main,
// extras, session, personal.
func (c *Coordinator) dictStack() []dict.Dictionary {
	stack := make([]dict.Dictionary, 0, 4+len(c.Extras))
	if c.Main != nil {
		stack = append(stack, c.Main)
	}
	stack = append(stack, c.Extras...)
	if c.Session != nil {
		stack = append(stack, c.Session)
	}
	if c.Personal != nil {
		stack = append(stack, c.Personal)
	}
	return stack
}

// Check implements check: normalize and clean the word, try
// every dictionary in the stack, fall back to affix expansion, then to
// run-together splitting.
func (c *Coordinator) Check(word string) bool {
	if word == "" {
		return false
	}
	cmp := c.cmp()
	for _, d := range c.dictStack() {
		e, err := d.Lookup(word, cmp)
		if err == nil && e != nil {
			return true
		}
	}

	if c.Affix != nil {
		lookupFn := affix.Lookup(func(candidate string) bool {
			for _, d := range c.dictStack() {
				e, err := d.Lookup(candidate, cmp)
				if err == nil && e != nil {
					return true
				}
			}
			return false
		})
		if _, ok := c.Affix.AffixCheck(lookupFn, c.Lang.ToClean(word)); ok {
			return true
		}
	}

	if c.Cfg.RunTogether {
		if c.checkRunTogether(word, c.Cfg.RunTogetherLimit) {
			return true
		}
	}

	return false
}

// checkRunTogether implements the leftmost-greedy split strategy
// This resolves the open run-together question with:
// try the shortest valid left component first, recurse on the remainder,
// bounded by limit components and RunTogetherMin runes per component.
func (c *Coordinator) checkRunTogether(word string, limit int) bool {
	if limit < 2 {
		return false
	}
	runes := []rune(word)
	minLen := c.Cfg.RunTogetherMin
	if minLen < 1 {
		minLen = 1
	}
	for split := minLen; split <= len(runes)-minLen; split++ {
		left := string(runes[:split])
		right := string(runes[split:])
		if !c.checkSingle(left) {
			continue
		}
		if c.checkSingle(right) {
			return true
		}
		if limit > 1 && c.checkRunTogether(right, limit-1) {
			return true
		}
	}
	return false
}

// checkSingle checks one component without recursing into run-together
// splitting again, to keep the bound on recursion depth explicit.
func (c *Coordinator) checkSingle(word string) bool {
	cmp := c.cmp()
	for _, d := range c.dictStack() {
		e, err := d.Lookup(word, cmp)
		if err == nil && e != nil {
			return true
		}
	}
	if c.Affix != nil {
		lookupFn := affix.Lookup(func(candidate string) bool {
			for _, d := range c.dictStack() {
				e, err := d.Lookup(candidate, cmp)
				if err == nil && e != nil {
					return true
				}
			}
			return false
		})
		if _, ok := c.Affix.AffixCheck(lookupFn, c.Lang.ToClean(word)); ok {
			return true
		}
	}
	return false
}

// Suggest is explicitly out of scope: the suggestion search (edit-distance
// and phonetic candidate ranking) is an external collaborator described
// only at its interface here.
func (c *Coordinator) Suggest(word string, maxDist int) ([]dict.WordEntry, error) {
	return nil, dict.ErrUnimplementedMethod
}

// AddToPersonal adds word to the persistent personal dictionary.
func (c *Coordinator) AddToPersonal(word string) error {
	if c.Personal == nil {
		return fmt.Errorf("no_wordlist_for_lang: no personal dictionary configured")
	}
	return c.Personal.Add(word)
}

// AddToSession adds word to the session-scoped word list.
func (c *Coordinator) AddToSession(word string) error {
	if c.Session == nil {
		return fmt.Errorf("no_wordlist_for_lang: no session dictionary configured")
	}
	return c.Session.Add(word)
}

// StoreReplacement records a (misspelling, correction) pair so a later
// Suggest would rank it first (; ranking itself is out of
// scope, see Suggest).
func (c *Coordinator) StoreReplacement(misspelling, correction string) error {
	if c.Repl == nil {
		return fmt.Errorf("no_wordlist_for_lang: no replacement dictionary configured")
	}
	return c.Repl.AddRepl(misspelling, correction)
}

// ClearSession empties the session word list.
func (c *Coordinator) ClearSession() error {
	if c.Session == nil {
		return nil
	}
	return c.Session.Clear()
}

// SaveAllWordLists persists the personal and replacement dictionaries.
func (c *Coordinator) SaveAllWordLists() error {
	if c.Personal != nil {
		if err := c.Personal.SaveNoupdate(); err != nil {
			return err
		}
	}
	if c.Repl != nil {
		if err := c.Repl.SaveNoupdate(); err != nil {
			return err
		}
	}
	return nil
}
