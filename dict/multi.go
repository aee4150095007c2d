package dict

import (
	"fmt"
	"strings"

	"github.com/aspellgo/aspellgo/lang"
)

// Multi is the composite dictionary: an ordered list of child dictionaries
// queried as one. Lookups iterate children in order and
// return the first match; enumeration concatenates.
type Multi struct {
	unsupported

	name     string
	children []Dictionary
}

// NewMulti composes children into one dictionary. All children must report
// the same language; a mismatch is a mismatched_language error.
func NewMulti(name string, children ...Dictionary) (*Multi, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("bad_file_format: multi dictionary %q needs at least one child", name)
	}
	lang0 := children[0].Language()
	for _, c := range children[1:] {
		if c.Language().Name != lang0.Name {
			return nil, fmt.Errorf("mismatched_language: %q uses %q, expected %q", c.Name(), c.Language().Name, lang0.Name)
		}
	}
	return &Multi{name: name, children: children}, nil
}

func (m *Multi) Name() string             { return m.name }
func (m *Multi) Language() *lang.Language { return m.children[0].Language() }
func (m *Multi) SupportedFlags() Flags    { return Flags{} }

func (m *Multi) Lookup(word string, cmp SensitiveCompare) (*WordEntry, error) {
	for _, c := range m.children {
		e, err := c.Lookup(word, cmp)
		if err != nil && err != ErrUnimplementedMethod {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func (m *Multi) CleanLookup(cleanForm string) (*WordEntry, error) {
	for _, c := range m.children {
		e, err := c.CleanLookup(cleanForm)
		if err != nil && err != ErrUnimplementedMethod {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func (m *Multi) SoundslikeLookup(key string) (*WordEntry, error) {
	for _, c := range m.children {
		e, err := c.SoundslikeLookup(key)
		if err != nil && err != ErrUnimplementedMethod {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func (m *Multi) ReplLookup(misspelling string) ([]string, error) {
	var out []string
	for _, c := range m.children {
		reps, err := c.ReplLookup(misspelling)
		if err != nil && err != ErrUnimplementedMethod {
			return nil, err
		}
		out = append(out, reps...)
	}
	return out, nil
}

func (m *Multi) Elements() func(func(*WordEntry) bool) {
	return func(yield func(*WordEntry) bool) {
		for _, c := range m.children {
			cont := true
			c.Elements()(func(e *WordEntry) bool {
				if !yield(e) {
					cont = false
					return false
				}
				return true
			})
			if !cont {
				return
			}
		}
	}
}

func (m *Multi) DetailedElements() func(func(*WordEntry) bool) { return m.Elements() }

// Children exposes the composed dictionaries, e.g. for the speller
// coordinator to find which child is affix-compressed.
func (m *Multi) Children() []Dictionary { return m.children }

// ParseMultiRecipe parses a recipe file whose lines are "add <path>"
//. The caller is responsible for resolving each path to
// a Dictionary and calling NewMulti.
func ParseMultiRecipe(data []byte) ([]string, error) {
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] != "add" {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("bad_file_format: malformed add line %q", line)
		}
		paths = append(paths, fields[1])
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("bad_file_format: multi recipe requires at least one add")
	}
	return paths, nil
}
