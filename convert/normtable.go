// Package convert implements the conversion pipeline between external text
// encodings and the internal (code, width) charset a Language declares:
// Decode, Encode, DirectConv, and the Unicode normalization tables (.cmap)
// that sit in between.
//
// The normalization table is a rune sequence tree (N:M, not a flat 1:1
// mapping) so a single Unicode code point can expand to several internal
// units and vice versa. External-encoding decode/encode (the single-byte
// ISO-8859-1/2/15 and windows-1252 charsets; UTF-16 is not supported) is
// built on golang.org/x/text/encoding rather than hand-rolled byte tables.
package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// NormEntry is one leaf of a normalization table: a Unicode sequence maps
// to up to N internal charset bytes, or is skipped entirely ("> -" in the
// source file).
type NormEntry struct {
	To   []byte
	Skip bool
}

// NormSection is one of a .cmap file's labeled trees (INTERNAL, STRICT, or
// a named to-uni section). It is represented as a flat map from the
// hex-decoded Unicode sequence (as a string of runes) to its target,
// which is operationally equivalent to the tree the file format describes:
// every lookup is still by exact sequence match, and the file format's
// nested "/" sub-tables exist only to share common prefixes on disk, not to
// change lookup semantics.
type NormSection map[string]NormEntry

// Table is a parsed .cmap file: the Internal and Strict normalization
// sections (Unicode -> internal charset) plus the reverse ToUni section.
type Table struct {
	Internal NormSection
	Strict   NormSection
	ToUni    NormSection
}

// Lookup finds the normalization entry for seq under strict or lax rules.
// "Strict" vs "internal" normalization differ only in whether the target
// table is the strict variant (no lossy conversions) or the lax internal
// one.
func (t *Table) Lookup(seq string, strict bool) (NormEntry, bool) {
	if strict {
		if e, ok := t.Strict[seq]; ok {
			return e, true
		}
		return NormEntry{}, false
	}
	e, ok := t.Internal[seq]
	return e, ok
}

// ParseTable parses a.cmap file body : three labeled
// sections, each followed by a "/" marker, then "N <size>" and <size>
// lines of "<from> > <to>*" (hex code points separated by spaces; ">  -"
// means skip).
func ParseTable(data []byte) (*Table, error) {
	t := &Table{Internal: NormSection{}, Strict: NormSection{}, ToUni: NormSection{}}
	lines := strings.Split(string(data), "\n")

	var current NormSection
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch line {
		case "INTERNAL":
			current = t.Internal
		case "STRICT":
			current = t.Strict
		case "to-uni":
			current = t.ToUni
		case "/":
			i++
			if current == nil {
				return nil, fmt.Errorf("bad_file_format: cmap entries before a section header")
			}
			if i >= len(lines) {
				return nil, fmt.Errorf("bad_file_format: cmap truncated after section marker")
			}
			sizeLine := strings.TrimSpace(lines[i])
			fields := strings.Fields(sizeLine)
			if len(fields) != 2 || fields[0] != "N" {
				return nil, fmt.Errorf("bad_file_format: expected \"N <size>\", got %q", sizeLine)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("bad_file_format: bad size %q: %w", fields[1], err)
			}
			for j := 0; j < n; j++ {
				i++
				if i >= len(lines) {
					return nil, fmt.Errorf("bad_file_format: cmap truncated, expected %d entries", n)
				}
				if err := parseEntryLine(current, lines[i]); err != nil {
					return nil, err
				}
			}
			current = nil
		}
		i++
	}
	return t, nil
}

func parseEntryLine(into NormSection, raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}
	parts := strings.SplitN(line, ">", 2)
	if len(parts) != 2 {
		return fmt.Errorf("bad_file_format: malformed cmap entry %q", raw)
	}
	fromHex := strings.Fields(parts[0])
	var from strings.Builder
	for _, h := range fromHex {
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return fmt.Errorf("bad_file_format: bad from code point %q: %w", h, err)
		}
		from.WriteRune(rune(v))
	}
	toField := strings.TrimSpace(parts[1])
	if toField == "-" {
		into[from.String()] = NormEntry{Skip: true}
		return nil
	}
	var to []byte
	for _, h := range strings.Fields(toField) {
		v, err := strconv.ParseUint(h, 16, 8)
		if err != nil {
			return fmt.Errorf("bad_file_format: bad to byte %q: %w", h, err)
		}
		to = append(to, byte(v))
	}
	into[from.String()] = NormEntry{To: to}
	return nil
}
