package dict

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/aspellgo/aspellgo/lang"
)

// Readonly is an immutable, in-memory word list loaded once from an
// embedded bundle. The on-disk binary dictionary format's own internals
// are out of scope, so this loads a plain-text word list rather than
// replicating that legacy binary layout. It supports clean-form and
// soundslike lookup backed by precomputed hash indexes built once at load
// time via go:embed, keyed by the exact clean form and soundslike key
// rather than edit-distance delete-variants.
type Readonly struct {
	unsupported

	name string
	l    *lang.Language

	byClean      map[string][]string // clean form -> stored words sharing it
	bySoundslike map[string][]string // soundslike key -> stored words sharing it
	freq         map[string]int64
}

// NewReadonly builds a Readonly dictionary from a newline-delimited word
// list ("word [frequency]" per line, the simplified rowl stand-in).
func NewReadonly(name string, l *lang.Language, data []byte) (*Readonly, error) {
	d := &Readonly{
		name:         name,
		l:            l,
		byClean:      make(map[string][]string),
		bySoundslike: make(map[string][]string),
		freq:         make(map[string]int64),
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "aspellgo") || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		word := fields[0]
		var freq int64
		if len(fields) > 1 {
			freq, _ = strconv.ParseInt(fields[1], 10, 64)
		}
		clean := l.ToClean(word)
		d.byClean[clean] = append(d.byClean[clean], word)
		sl := l.Soundslike.ToSoundslike(word)
		d.bySoundslike[sl] = append(d.bySoundslike[sl], word)
		d.freq[word] = freq
	}
	return d, nil
}

func (d *Readonly) Name() string             { return d.name }
func (d *Readonly) Language() *lang.Language { return d.l }
func (d *Readonly) SupportedFlags() Flags {
	return Flags{FastLookup: true, FastScan: true}
}

func (d *Readonly) entryChain(words []string, kind EntryKind) *WordEntry {
	if len(words) == 0 {
		return nil
	}
	return d.entryAt(words, 0, kind)
}

func (d *Readonly) entryAt(words []string, i int, kind EntryKind) *WordEntry {
	w := words[i]
	e := &WordEntry{
		Text:      w,
		Kind:      kind,
		Info:      d.l.GetWordInfo(w),
		Frequency: d.freq[w],
	}
	if i+1 < len(words) {
		e.Next = func() (*WordEntry, bool) { return d.entryAt(words, i+1, kind), true }
	} else {
		e.Next = func() (*WordEntry, bool) { return nil, false }
	}
	return e
}

func (d *Readonly) Lookup(word string, cmp SensitiveCompare) (*WordEntry, error) {
	clean := d.l.ToClean(word)
	for _, w := range d.byClean[clean] {
		if cmp.Equal(word, w) {
			return d.entryChain([]string{w}, Word), nil
		}
	}
	return nil, nil
}

func (d *Readonly) CleanLookup(cleanForm string) (*WordEntry, error) {
	return d.entryChain(d.byClean[cleanForm], Clean), nil
}

func (d *Readonly) SoundslikeLookup(key string) (*WordEntry, error) {
	return d.entryChain(d.bySoundslike[key], Soundslike), nil
}

func (d *Readonly) Elements() func(func(*WordEntry) bool) {
	return func(yield func(*WordEntry) bool) {
		for _, words := range d.byClean {
			for _, w := range words {
				if !yield(&WordEntry{Text: w, Kind: Word, Info: d.l.GetWordInfo(w), Frequency: d.freq[w]}) {
					return
				}
			}
		}
	}
}

func (d *Readonly) DetailedElements() func(func(*WordEntry) bool) { return d.Elements() }
