// Package affix implements the prefix/suffix rule engine: expansion of a
// root word and its affix-flag string into surface forms, and the reverse
// operation ("munching") that recovers candidate roots from a surface word.
//
// Both directions share a backtracking suffix/prefix-stripping search:
// strip a candidate affix, validate the resulting stem against a
// condition regex, then look up (or recurse on) the stem.
package affix

import (
	"fmt"
	"regexp"
	"strings"
)

// AffixStatus is the result of CheckAffix.
type AffixStatus int

const (
	ValidAffix AffixStatus = iota
	InapplicableAffix
	InvalidAffix
)

func (s AffixStatus) String() string {
	switch s {
	case ValidAffix:
		return "valid_affix"
	case InapplicableAffix:
		return "inapplicable_affix"
	default:
		return "invalid_affix"
	}
}

// Entry is one affix rule: strip a suffix/prefix, append a replacement,
// subject to a condition regex matched against the resulting stem.
type Entry struct {
	Strip  string
	Append string
	Cond   *regexp.Regexp
	Cross  bool
}

// Table holds the full prefix/suffix rule set for one language, indexed by
// affix flag byte.
type Table struct {
	Suffix map[byte][]Entry
	Prefix map[byte][]Entry
}

// CheckInfo is populated by AffixCheck on a successful match: the
// recovered root and the flag(s) that produced it (one for a plain
// prefix/suffix hit, two when a cross-product combination matched).
type CheckInfo struct {
	Root  string
	Flags []byte
}

// Lookup reports whether word exists in the dictionary being checked
// against. AffixCheck and Munch are dictionary-agnostic; the caller (the
// Dictionary Layer) supplies this closure.
type Lookup func(word string) bool

// suffixStems returns, for flag, the stems left by each entry whose Append
// is a suffix of word and whose Cond matches the resulting stem.
func (t *Table) suffixStems(word string, flag byte) []string {
	var stems []string
	for _, e := range t.Suffix[flag] {
		if !strings.HasSuffix(word, e.Append) {
			continue
		}
		stem := word[:len(word)-len(e.Append)] + e.Strip
		if e.Cond != nil && !e.Cond.MatchString(stem) {
			continue
		}
		stems = append(stems, stem)
	}
	return stems
}

func (t *Table) prefixStems(word string, flag byte) []string {
	var stems []string
	for _, e := range t.Prefix[flag] {
		if !strings.HasPrefix(word, e.Append) {
			continue
		}
		stem := e.Strip + word[len(e.Append):]
		if e.Cond != nil && !e.Cond.MatchString(stem) {
			continue
		}
		stems = append(stems, stem)
	}
	return stems
}

// AffixCheck implements affix_check: tries every plausible
// suffix, prefix, and (when an entry allows cross-product) paired
// prefix+suffix stripping, returning on the first stripped root the lookup
// accepts.
func (t *Table) AffixCheck(lookup Lookup, word string) (*CheckInfo, bool) {
	for flag, entries := range t.Suffix {
		for _, e := range entries {
			if !strings.HasSuffix(word, e.Append) {
				continue
			}
			stem := word[:len(word)-len(e.Append)] + e.Strip
			if e.Cond != nil && !e.Cond.MatchString(stem) {
				continue
			}
			if lookup(stem) {
				return &CheckInfo{Root: stem, Flags: []byte{flag}}, true
			}
			if e.Cross {
				if ci, ok := t.crossFromSuffixStem(lookup, stem, flag); ok {
					return ci, true
				}
			}
		}
	}
	for flag, stems := range t.prefixStemsByFlag(word) {
		for _, stem := range stems {
			if lookup(stem) {
				return &CheckInfo{Root: stem, Flags: []byte{flag}}, true
			}
		}
	}
	return nil, false
}

func (t *Table) prefixStemsByFlag(word string) map[byte][]string {
	out := make(map[byte][]string, len(t.Prefix))
	for flag := range t.Prefix {
		if stems := t.prefixStems(word, flag); len(stems) > 0 {
			out[flag] = stems
		}
	}
	return out
}

// crossFromSuffixStem tries stripping a cross-product-eligible prefix from
// a suffix-stripped stem, so "un" + "help" + "ful" both strip in one check.
func (t *Table) crossFromSuffixStem(lookup Lookup, stem string, suffixFlag byte) (*CheckInfo, bool) {
	for pflag, entries := range t.Prefix {
		for _, e := range entries {
			if !e.Cross || !strings.HasPrefix(stem, e.Append) {
				continue
			}
			root := e.Strip + stem[len(e.Append):]
			if e.Cond != nil && !e.Cond.MatchString(root) {
				continue
			}
			if lookup(root) {
				return &CheckInfo{Root: root, Flags: []byte{pflag, suffixFlag}}, true
			}
		}
	}
	return nil, false
}

// RootFlags is one candidate (root, flag) pair recovered by Munch.
type RootFlags struct {
	Root string
	Flag byte
}

// Munch implements munch: the inverse of Expand, enumerating
// every (root, flag) pair from which word could have been produced. Unlike
// AffixCheck it does not stop at the first match — all candidates flow
// into suggestion use.
func (t *Table) Munch(word string, cross bool) []RootFlags {
	var out []RootFlags
	for flag := range t.Suffix {
		for _, stem := range t.suffixStems(word, flag) {
			out = append(out, RootFlags{Root: stem, Flag: flag})
			if cross {
				for pflag := range t.Prefix {
					for _, root := range t.prefixStems(stem, pflag) {
						out = append(out, RootFlags{Root: root, Flag: pflag})
					}
				}
			}
		}
	}
	for flag := range t.Prefix {
		for _, stem := range t.prefixStems(word, flag) {
			out = append(out, RootFlags{Root: stem, Flag: flag})
		}
	}
	return out
}

// WordAff is one surface form produced by Expand, with the affix flags
// that were not consumed producing it.
type WordAff struct {
	Word           string
	RemainingFlags []byte
}

// Expand implements expand: expands root with the given
// affix-flag string, producing up to limit surface forms. A limit of 0
// means unbounded.
func (t *Table) Expand(root string, flags []byte, limit int) []WordAff {
	var out []WordAff
	emit := func(word string, used byte) bool {
		remaining := make([]byte, 0, len(flags))
		for _, f := range flags {
			if f != used {
				remaining = append(remaining, f)
			}
		}
		out = append(out, WordAff{Word: word, RemainingFlags: remaining})
		return limit > 0 && len(out) >= limit
	}

	out = append(out, WordAff{Word: root, RemainingFlags: flags})
	for _, flag := range flags {
		for _, e := range t.Suffix[flag] {
			if e.Cond != nil && !e.Cond.MatchString(root) {
				continue
			}
			if !strings.HasSuffix(root, e.Strip) {
				continue
			}
			surface := root[:len(root)-len(e.Strip)] + e.Append
			if emit(surface, flag) {
				return out
			}
		}
		for _, e := range t.Prefix[flag] {
			if e.Cond != nil && !e.Cond.MatchString(root) {
				continue
			}
			if !strings.HasPrefix(root, e.Strip) {
				continue
			}
			surface := e.Append + root[len(e.Strip):]
			if emit(surface, flag) {
				return out
			}
		}
	}
	return out
}

// CheckAffix implements check_affix: diagnoses whether flag is
// applicable to word, used to validate personal-dictionary entries at
// insert time.
func (t *Table) CheckAffix(word string, flag byte) (AffixStatus, error) {
	sEntries, sOK := t.Suffix[flag]
	pEntries, pOK := t.Prefix[flag]
	if !sOK && !pOK {
		return InvalidAffix, fmt.Errorf("invalid_affix: flag %q not in table", flag)
	}
	for i, e := range sEntries {
		if strings.HasSuffix(word, e.Append) {
			stem := word[:len(word)-len(e.Append)] + e.Strip
			if e.Cond == nil || e.Cond.MatchString(stem) {
				_ = i
				return ValidAffix, nil
			}
		}
	}
	for _, e := range pEntries {
		if strings.HasPrefix(word, e.Append) {
			stem := e.Strip + word[len(e.Append):]
			if e.Cond == nil || e.Cond.MatchString(stem) {
				return ValidAffix, nil
			}
		}
	}
	return InapplicableAffix, nil
}
