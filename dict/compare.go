package dict

import (
	"github.com/aspellgo/aspellgo/internal/caseutil"
	"github.com/aspellgo/aspellgo/lang"
)

// SensitiveCompare is the case/accent-aware equality predicate: given a
// candidate and a stored form, walk both until a mismatch, optionally
// skipping a leading begin-special on the candidate and a trailing
// end-special, and optionally folding case and stripping accents before
// comparing.
type SensitiveCompare struct {
	Lang           *lang.Language
	CaseInsensitive bool
	IgnoreAccents   bool
}

// Equal implements the sensitive compare.
func (c SensitiveCompare) Equal(candidate, stored string) bool {
	cand := []rune(candidate)
	store := []rune(stored)

	// A leading SpecialChar.begin on the candidate may be skipped once,
	// e.g. "'tis" matching "tis" when "'" is a begin-special.
	if len(cand) > 0 {
		if info, ok := c.Lang.LookupRuneInfo(cand[0]); ok && info.Special.Begin && info.Type != lang.Letter {
			cand = cand[1:]
		}
	}
	// A trailing SpecialChar.end on the candidate may be consumed.
	if len(cand) > 0 {
		last := cand[len(cand)-1]
		if info, ok := c.Lang.LookupRuneInfo(last); ok && info.Special.End && info.Type != lang.Letter {
			cand = cand[:len(cand)-1]
		}
	}

	a := c.fold(string(cand))
	b := c.fold(string(store))
	return a == b
}

func (c SensitiveCompare) fold(s string) string {
	if c.CaseInsensitive {
		s = caseutil.ToUpper(s)
	}
	if c.IgnoreAccents {
		s = c.Lang.ToPlain(s)
	}
	return s
}
