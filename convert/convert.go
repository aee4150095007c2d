package convert

import (
	"fmt"

	"github.com/aspellgo/aspellgo/lang"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DecodeError is the structured error DecodeEC returns on an invalid
// input sequence: a byte offset alongside the underlying cause.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid_string: byte %d: %v", e.Offset, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is encode_ec's structured failure: a code point with no
// representation in the target charset.
type EncodeError struct {
	CodePoint rune
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("invalid_string: U+%04X is unsupported", e.CodePoint)
}

// externalEncodings maps the supported single-byte aliases ("iso8859-1",
// "iso8859-2", "iso8859-15", "ANSI_X3.4-1968", "windows-1252") to an x/text
// Encoding, the idiomatic way to decode a named legacy charset (see package
// doc). UTF-16, UCS-2 and UCS-4 have no entry and are not supported. UTF-8
// is handled directly without this table since it needs no external codec.
var externalEncodings = map[string]encoding.Encoding{
	"iso8859-1":          charmap.ISO8859_1,
	"iso8859-2":          charmap.ISO8859_2,
	"iso8859-15":         charmap.ISO8859_15,
	"ANSI_X3.4-1968":     charmap.ISO8859_1, // 7-bit ASCII is a strict subset
	"windows-1252":       charmap.Windows1252,
}

// ResolveEncoding normalizes an encoding alias string, implementing the
// encoding-aliasing requirement of 
func ResolveEncoding(name string) (encoding.Encoding, bool) {
	enc, ok := externalEncodings[name]
	return enc, ok
}

// Pipeline is a configured (from_encoding, to_encoding, normalization_mode)
// converter bound to one Language's charset and optional normalization
// table.
type Pipeline struct {
	Lang       *lang.Language
	Norm       *Table // optional; nil means no .cmap-driven normalization
	FromExternal string // "" or "utf-8" means the input is already UTF-8
	Strict     bool
}

// Decode implements decode: external bytes -> internal
// (code,width) units. Invalid sequences are silently replaced with '?'.
func (p *Pipeline) Decode(src []byte) lang.Text {
	out, _ := p.decode(src, false)
	return out
}

// DecodeEC is decode_ec: like Decode, but returns a structured error with a
// byte offset on the first invalid sequence instead of substituting.
func (p *Pipeline) DecodeEC(src []byte) (lang.Text, error) {
	return p.decode(src, true)
}

func (p *Pipeline) decode(src []byte, strictErrors bool) (lang.Text, error) {
	runes, err := p.toRunes(src)
	if err != nil {
		if strictErrors {
			return nil, err
		}
	}
	external := p.FromExternal != "" && p.FromExternal != "utf-8"
	var out lang.Text
	i := 0
	for i < len(runes) {
		seq, units, width, consumed := p.lookupRuneSeq(runes, i)
		if units == nil && !seqIsSkip(p, seq) {
			srcWidth := uint8(1)
			if !external {
				srcWidth = uint8(runeUTF8Len(runes[i]))
			}
			info, ok := p.Lang.CodePointInfo(runes[i])
			if !ok {
				if strictErrors {
					offset := i
					if !external {
						offset = len(string(runes[:i]))
					}
					return nil, &DecodeError{Offset: offset, Err: fmt.Errorf("code point U+%04X outside charset", runes[i])}
				}
				out = append(out, lang.Character{Code: byte('?'), Width: srcWidth})
				i++
				continue
			}
			out = append(out, lang.Character{Code: info, Width: srcWidth})
			i++
			continue
		}
		if seqIsSkip(p, seq) {
			i += consumed
			continue
		}
		for j, u := range units {
			w := uint8(0)
			if j == 0 {
				w = uint8(width)
			}
			out = append(out, lang.Character{Code: u, Width: w})
		}
		i += consumed
	}
	out = append(out, lang.Sentinel)
	return out, nil
}

// toRunes decodes src to runes, using an external encoding codec first when
// one is configured, or treating src as UTF-8 otherwise.
func (p *Pipeline) toRunes(src []byte) ([]rune, error) {
	if p.FromExternal != "" && p.FromExternal != "utf-8" {
		enc, ok := ResolveEncoding(p.FromExternal)
		if !ok {
			return nil, fmt.Errorf("unknown_encoding: %q", p.FromExternal)
		}
		decoded, err := enc.NewDecoder().Bytes(src)
		if err != nil {
			return nil, err
		}
		return []rune(string(decoded)), nil
	}
	return []rune(string(src)), nil
}

// lookupRuneSeq tries progressively shorter multi-rune prefixes starting at
// i against the normalization table (so multi-codepoint sequences like a
// combining diaeresis pair are matched before falling back to a single
// rune), returning the matched sequence text, target bytes, the UTF-8
// byte width of the consumed input, and how many runes were consumed.
func (p *Pipeline) lookupRuneSeq(runes []rune, i int) (seq string, units []byte, width int, consumed int) {
	if p.Norm == nil {
		return "", nil, 0, 1
	}
	maxLen := 4
	if len(runes)-i < maxLen {
		maxLen = len(runes) - i
	}
	for l := maxLen; l >= 1; l-- {
		candidate := string(runes[i : i+l])
		if e, ok := p.Norm.Lookup(candidate, p.Strict); ok {
			w := 0
			for _, r := range candidate {
				w += runeUTF8Len(r)
			}
			if e.Skip {
				return candidate, nil, 0, l
			}
			return candidate, e.To, w, l
		}
	}
	return "", nil, 0, 1
}

func seqIsSkip(p *Pipeline, seq string) bool {
	if p.Norm == nil || seq == "" {
		return false
	}
	e, ok := p.Norm.Lookup(seq, p.Strict)
	return ok && e.Skip
}

func runeUTF8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// Encode implements encode: the inverse of Decode.
func (p *Pipeline) Encode(t lang.Text) []byte {
	out, _ := p.encode(t, false)
	return out
}

// EncodeEC is encode_ec: fails on a code point unrepresentable in the
// target charset with an invalid_string error naming the code point.
func (p *Pipeline) EncodeEC(t lang.Text) ([]byte, error) {
	return p.encode(t, true)
}

func (p *Pipeline) encode(t lang.Text, strictErrors bool) ([]byte, error) {
	var runes []rune
	for _, c := range t {
		if c == lang.Sentinel {
			break
		}
		info := p.Lang.CharTable[c.Code]
		if info.CodePoint == 0 && c.Code != 0 {
			if strictErrors {
				return nil, &EncodeError{CodePoint: info.CodePoint}
			}
			runes = append(runes, '?')
			continue
		}
		runes = append(runes, info.CodePoint)
	}
	if p.FromExternal != "" && p.FromExternal != "utf-8" {
		enc, ok := ResolveEncoding(p.FromExternal)
		if !ok {
			return nil, fmt.Errorf("unknown_encoding: %q", p.FromExternal)
		}
		return p.encodeExternal(enc, runes, strictErrors)
	}
	return []byte(string(runes)), nil
}

// encodeExternal encodes runes one at a time so a failure can name the
// specific code point responsible, rather than losing that information to
// a single Bytes call over the whole buffer. Non-strict callers get '?' in
// place of any code point the target encoding rejects; strict callers get
// an EncodeError naming it.
func (p *Pipeline) encodeExternal(enc encoding.Encoding, runes []rune, strictErrors bool) ([]byte, error) {
	var out []byte
	for _, r := range runes {
		b, err := enc.NewEncoder().Bytes([]byte(string(r)))
		if err != nil {
			if strictErrors {
				return nil, &EncodeError{CodePoint: r}
			}
			out = append(out, '?')
			continue
		}
		out = append(out, b...)
	}
	return out, nil
}

// DirectConv implements the fast path: it returns true when the from/to
// encodings match and no normalization is configured, meaning conversion
// is the identity and can be skipped.
func (p *Pipeline) DirectConv(fromEnc, toEnc string) (ok bool) {
	return fromEnc == toEnc && p.Norm == nil
}
