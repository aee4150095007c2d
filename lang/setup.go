package lang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aspellgo/aspellgo/affix"
)

// classOf maps a .cset class letter to a CharType.
func classOf(c string) CharType {
	switch c {
	case "S":
		return WhiteSpace
	case "H":
		return Hyphen
	case "D":
		return Digit
	case "N":
		return NonLetter
	case "M":
		return Modifier
	case "L":
		return Letter
	default:
		return Unknown
	}
}

func hexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func hexRune(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}

// ParseCharset parses a <charset>.cset file body: a header
// ending in a line "/", then 256 lines "HH UUUU C UP LO TI PL F R".
func ParseCharset(data []byte) (table [256]CharInfo, err error) {
	lines := strings.Split(string(data), "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) != "/" {
		i++
	}
	i++ // skip the "/" marker
	row := 0
	for ; i < len(lines) && row < 256; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 9 {
			return table, fmt.Errorf("%w: cset row %d has %d fields, want 9", ErrBadFileFormat, row, len(f))
		}
		b, err := hexByte(f[0])
		if err != nil {
			return table, fmt.Errorf("%w: cset row %d: %v", ErrBadFileFormat, row, err)
		}
		cp, err := hexRune(f[1])
		if err != nil {
			return table, fmt.Errorf("%w: cset row %d: %v", ErrBadFileFormat, row, err)
		}
		up, _ := hexByte(f[3])
		lo, _ := hexByte(f[4])
		ti, _ := hexByte(f[5])
		pl, _ := hexByte(f[6])
		sf, _ := hexByte(f[7])
		sr, _ := hexByte(f[8])
		table[b] = CharInfo{
			CodePoint: cp,
			Type:      classOf(f[2]),
			Upper:     up,
			Lower:     lo,
			Title:     ti,
			Plain:     pl,
			SLFirst:   sf,
			SLRest:    sr,
		}
		row++
	}
	if row != 256 {
		return table, fmt.Errorf("%w: cset has %d rows, want 256", ErrBadFileFormat, row)
	}
	return table, nil
}

// applySpecial applies a language's "special" .dat declarations of the form
// "special <byte> :begin|:end|:both|:middle" onto the charset table.
func applySpecial(table *[256]CharInfo, runeIdx map[rune]byte, decl string) error {
	fields := strings.Fields(decl)
	if len(fields) != 2 {
		return fmt.Errorf("%w: malformed special declaration %q", ErrBadFileFormat, decl)
	}
	r := []rune(fields[0])[0]
	b, ok := runeIdx[r]
	if !ok {
		return fmt.Errorf("%w: special character %q not in charset", ErrBadFileFormat, fields[0])
	}
	info := &table[b]
	switch fields[1] {
	case ":begin":
		info.Special.Begin = true
	case ":end":
		info.Special.End = true
	case ":middle":
		info.Special.Middle = true
	case ":both":
		info.Special.Begin = true
		info.Special.Middle = true
		info.Special.End = true
	default:
		return fmt.Errorf("%w: unknown special position %q", ErrBadFileFormat, fields[1])
	}
	return nil
}

// deriveClean computes to_clean for each byte as lower-then-plain, matching the
// convention that CLEAN == lowercased AND diacritic-stripped.
func deriveClean(table *[256]CharInfo) {
	for i := range table {
		lo := table[i].Lower
		table[i].Clean = table[lo].Plain
	}
}

// Bundle is the set of raw data files Setup needs for one language; package
// data supplies the embedded "en" bundle, but Setup accepts any bundle so
// tests can supply synthetic ones.
type Bundle struct {
	Dat     []byte
	Charset []byte
	Phonet  []byte // optional
	Affix   []byte // optional; parsed into Language.Affix when non-empty
}

// Setup implements Language.setup: builds an immutable
// Language from a data bundle. It loads the declared charset, builds the
// 256-entry byte tables, derives the clean-form table, and constructs the
// configured soundslike transform. The only table check is that the
// charset file has 256 rows; no invariant of to_clean is verified.
func Setup(b Bundle) (*Language, error) {
	meta := ParseDat(b.Dat)
	name, ok := meta["name"]
	if !ok {
		return nil, fmt.Errorf("%w: missing required key \"name\"", ErrBadFileFormat)
	}
	charsetName := meta["charset"]
	if charsetName == "" {
		return nil, fmt.Errorf("%w: missing required key \"charset\"", ErrBadFileFormat)
	}

	table, err := ParseCharset(b.Charset)
	if err != nil {
		return nil, err
	}

	runeIdx := make(map[rune]byte, 256)
	for i := 0; i < 256; i++ {
		runeIdx[table[i].CodePoint] = byte(i)
	}

	for _, decl := range ParseDatMulti(b.Dat)["special"] {
		if err := applySpecial(&table, runeIdx, decl); err != nil {
			return nil, err
		}
	}

	deriveClean(&table)

	for i := range table {
		if table[i].Type != Letter {
			table[i].SLFirst, table[i].SLRest = table[i].Clean, table[i].Clean
		}
	}

	l := &Language{
		Name:      name,
		Charset:   charsetName,
		CharTable: table,
		runeIndex: runeIdx,
	}

	switch meta["soundslike"] {
	case "", "none":
		l.Soundslike = NewSoundslikeNone(l)
	case "stripped":
		l.Soundslike = NewSoundslikeStripped(l)
	case "simple":
		l.Soundslike = NewSoundslikeSimple(l)
	case "phonet":
		if len(b.Phonet) == 0 {
			return nil, fmt.Errorf("%w: soundslike=phonet requires a phonet table", ErrBadFileFormat)
		}
		pt, err := ParsePhonetTable(b.Phonet)
		if err != nil {
			return nil, err
		}
		l.Soundslike = NewSoundslikePhonet(l, pt)
	default:
		return nil, fmt.Errorf("%w: unknown soundslike %q", ErrBadFileFormat, meta["soundslike"])
	}

	if len(b.Affix) > 0 {
		aff, err := affix.Parse(b.Affix)
		if err != nil {
			return nil, err
		}
		l.Affix = aff
	}

	return l, nil
}
