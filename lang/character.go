package lang

// Character is the fundamental unit crossing the filter/tokenizer
// boundary: an internal single-byte charset code paired with the number of
// source bytes it represents. A sequence of these, terminated by a
// zero-code sentinel, is what the filter chain and tokenizer operate on.
type Character struct {
	Code  byte
	Width uint8
}

// Sentinel is the zero unit terminating every Character sequence: the last
// char of each segment's buffer is always the zero unit.
var Sentinel = Character{}

// Text is a Character sequence, always sentinel-terminated by convention
// once finalized by a producer (package convert, package filter).
type Text []Character

// String decodes t back to the language's external representation, for
// debugging and logging only — the hot path never round-trips through
// string formatting.
func (t Text) String(l *Language) string {
	var runes []rune
	for _, c := range t {
		if c == Sentinel {
			break
		}
		runes = append(runes, l.CharTable[c.Code].CodePoint)
	}
	return string(runes)
}
