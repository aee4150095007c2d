package filter

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ModeVersion is the version this package's mode descriptor parser
// understands; a descriptor declaring a higher version is rejected with
// ErrBadVersion.
const ModeVersion = 1

// ModeDescriptor lists the filters a named mode (e.g. "tex", "html")
// installs and the options it sets on them.
type ModeDescriptor struct {
	Name    string
	Filters []string
	Options map[string]string
}

// ParseModeDescriptor reads a mode descriptor from its text form:
//
//	version 1
//	mode tex
//	filter tex-comment
//	filter tex-command
//	option tex-command.strip-braces true
//
// A missing "version" line, or one whose value exceeds ModeVersion,
// reports ErrBadVersion. A missing "mode" line or an "option" line with no
// value reports ErrEmptyValue.
func ParseModeDescriptor(data []byte) (*ModeDescriptor, error) {
	d := &ModeDescriptor{Options: map[string]string{}}
	sawVersion := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "version":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: malformed version line %q", ErrBadVersion, line)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil || v > ModeVersion {
				return nil, fmt.Errorf("%w: unsupported mode descriptor version %q", ErrBadVersion, fields[1])
			}
			sawVersion = true
		case "mode":
			if len(fields) != 2 || fields[1] == "" {
				return nil, fmt.Errorf("%w: mode line missing name", ErrEmptyValue)
			}
			d.Name = fields[1]
		case "filter":
			if len(fields) != 2 || fields[1] == "" {
				return nil, fmt.Errorf("%w: filter line missing name", ErrEmptyValue)
			}
			d.Filters = append(d.Filters, fields[1])
		case "option":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: option line %q missing a value", ErrEmptyValue, line)
			}
			d.Options[fields[1]] = strings.Join(fields[2:], " ")
		default:
			return nil, fmt.Errorf("%w: unrecognized mode descriptor directive %q", ErrBadVersion, fields[0])
		}
	}
	if !sawVersion {
		return nil, fmt.Errorf("%w: mode descriptor missing version line", ErrBadVersion)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("%w: mode descriptor missing mode name", ErrEmptyValue)
	}
	return d, nil
}

// Registry resolves a filter name to a constructor, reporting
// ErrNoSuchFilter for an unknown name.
type Registry struct {
	byName map[string]func(options map[string]string) (Stage, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]func(map[string]string) (Stage, error){}}
}

// Register adds a filter constructor under name.
func (r *Registry) Register(name string, build func(options map[string]string) (Stage, error)) {
	r.byName[name] = build
}

// Build installs every filter a mode descriptor names onto chain, using
// the options it declares, reporting ErrNoSuchFilter for a name the
// registry doesn't know.
func (r *Registry) Build(chain *Chain, d *ModeDescriptor) error {
	for _, name := range d.Filters {
		build, ok := r.byName[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrNoSuchFilter, name)
		}
		opts := optionsFor(d.Options, name)
		s, err := build(opts)
		if err != nil {
			return err
		}
		if err := chain.AddFilter(s); err != nil {
			return err
		}
	}
	return nil
}

// optionsFor narrows d.Options (keyed "<filter>.<key>") to the keys
// belonging to filter, stripping the prefix.
func optionsFor(all map[string]string, filterName string) map[string]string {
	prefix := filterName + "."
	out := map[string]string{}
	for k, v := range all {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out
}
