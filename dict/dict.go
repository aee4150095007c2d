// Package dict implements the Dictionary Layer: a uniform query interface
// over readonly, writable personal, replacement, and composite (multi)
// word sources, plus the sensitive-compare equality predicate they all
// share.
package dict

import (
	"errors"

	"github.com/aspellgo/aspellgo/lang"
)

// ErrUnimplementedMethod is returned by any Dictionary operation a
// concrete implementation does not support.
var ErrUnimplementedMethod = errors.New("unimplemented_method")

// EntryKind classifies how a WordEntry was produced.
type EntryKind int

const (
	Other EntryKind = iota
	Word
	Soundslike
	Clean
	Misspelled
)

// WordEntry is the result of any lookup. Next lets a caller
// walk sibling entries when a soundslike or clean key maps to more than
// one stored word, without the dictionary allocating a slice up front.
type WordEntry struct {
	Text      string
	AffixFlags string
	Category  string
	Kind      EntryKind
	Info      lang.WordInfo
	Frequency int64

	Next func() (*WordEntry, bool)
}

// Flags describes which lookup modes a Dictionary supports.
type Flags struct {
	AffixCompressed    bool
	InvisibleSoundslike bool
	FastLookup         bool
	FastScan           bool
}

// Dictionary is the common interface every word source implements. Not
// every dictionary supports every operation; unsupported calls return
// ErrUnimplementedMethod.
type Dictionary interface {
	// Name identifies the dictionary for error messages and Id.
	Name() string
	Language() *lang.Language
	SupportedFlags() Flags

	Lookup(word string, cmp SensitiveCompare) (*WordEntry, error)
	CleanLookup(cleanForm string) (*WordEntry, error)
	SoundslikeLookup(key string) (*WordEntry, error)
	ReplLookup(misspelling string) ([]string, error)

	Elements() func(yield func(*WordEntry) bool)
	DetailedElements() func(yield func(*WordEntry) bool)
	SoundslikeElements() func(yield func(*WordEntry) bool)

	Add(word string) error
	AddWithSoundslike(word, soundslike string) error
	Remove(word string) error
	AddRepl(misspelling, replacement string) error
	RemoveRepl(misspelling, replacement string) error
	Clear() error
	SaveNoupdate() error
	Synchronize() error
}

// unsupported is embedded by dictionaries that implement only a subset of
// Dictionary, so every unimplemented method reports the spec's error kind
// instead of panicking on a missing override.
type unsupported struct{}

func (unsupported) Lookup(string, SensitiveCompare) (*WordEntry, error) {
	return nil, ErrUnimplementedMethod
}
func (unsupported) CleanLookup(string) (*WordEntry, error)      { return nil, ErrUnimplementedMethod }
func (unsupported) SoundslikeLookup(string) (*WordEntry, error) { return nil, ErrUnimplementedMethod }
func (unsupported) ReplLookup(string) ([]string, error)         { return nil, ErrUnimplementedMethod }
func (unsupported) Elements() func(func(*WordEntry) bool)       { return func(func(*WordEntry) bool) {} }
func (unsupported) DetailedElements() func(func(*WordEntry) bool) {
	return func(func(*WordEntry) bool) {}
}
func (unsupported) SoundslikeElements() func(func(*WordEntry) bool) {
	return func(func(*WordEntry) bool) {}
}
func (unsupported) Add(string) error                      { return ErrUnimplementedMethod }
func (unsupported) AddWithSoundslike(string, string) error { return ErrUnimplementedMethod }
func (unsupported) Remove(string) error                   { return ErrUnimplementedMethod }
func (unsupported) AddRepl(string, string) error           { return ErrUnimplementedMethod }
func (unsupported) RemoveRepl(string, string) error        { return ErrUnimplementedMethod }
func (unsupported) Clear() error                           { return ErrUnimplementedMethod }
func (unsupported) SaveNoupdate() error                    { return ErrUnimplementedMethod }
func (unsupported) Synchronize() error                     { return ErrUnimplementedMethod }
