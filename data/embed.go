// Package data embeds the bundled "en" language: its charset table,
// normalization map, affix rules, phonet rules, and sample word/replacement
// lists. These are small hand-authored fixtures, not a production
// dictionary — enough for package lang, affix, dict, and speller to load a
// real language bundle end to end.
package data

import _ "embed"

//go:embed en.dat
var EnLang []byte

//go:embed en.cset
var EnCharset []byte

//go:embed en.cmap
var EnCmap []byte

//go:embed en.aff
var EnAffix []byte

//go:embed en_phonet.dat
var EnPhonet []byte

//go:embed en.wl
var EnWordlist []byte

//go:embed en.repl
var EnReplacements []byte
