package affix

import (
	"fmt"
	"regexp"
	"strings"
)

// Parse reads an affix table in the line-oriented format the bundled
// language data uses:
//
//	flag <byte> suffix|prefix cross=true|false
//	  strip=<s> append=<s> cond=<regex>
//	  ...
//
// A blank "strip=" means no characters are stripped. cond is matched
// against the resulting stem (see Entry).
func Parse(data []byte) (*Table, error) {
	t := &Table{Suffix: map[byte][]Entry{}, Prefix: map[byte][]Entry{}}

	var curFlag byte
	var curIsSuffix bool
	var curCross bool
	haveFlag := false

	for lineNo, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "aspellgo") || strings.HasPrefix(trimmed, "version") {
			continue
		}
		if strings.HasPrefix(trimmed, "flag ") {
			fields := strings.Fields(trimmed)
			if len(fields) < 4 {
				return nil, fmt.Errorf("bad_file_format: affix line %d: malformed flag header", lineNo+1)
			}
			if len(fields[1]) != 1 {
				return nil, fmt.Errorf("bad_file_format: affix line %d: flag must be one byte", lineNo+1)
			}
			curFlag = fields[1][0]
			switch fields[2] {
			case "suffix":
				curIsSuffix = true
			case "prefix":
				curIsSuffix = false
			default:
				return nil, fmt.Errorf("bad_file_format: affix line %d: kind must be suffix or prefix", lineNo+1)
			}
			curCross = false
			for _, f := range fields[3:] {
				if f == "cross=true" {
					curCross = true
				}
			}
			haveFlag = true
			continue
		}
		// indented entry line belonging to the current flag block
		if !haveFlag {
			return nil, fmt.Errorf("bad_file_format: affix line %d: entry before any flag header", lineNo+1)
		}
		entry, err := parseEntryLine(trimmed, curCross)
		if err != nil {
			return nil, fmt.Errorf("affix line %d: %w", lineNo+1, err)
		}
		if curIsSuffix {
			t.Suffix[curFlag] = append(t.Suffix[curFlag], entry)
		} else {
			t.Prefix[curFlag] = append(t.Prefix[curFlag], entry)
		}
	}
	return t, nil
}

func parseEntryLine(line string, cross bool) (Entry, error) {
	var e Entry
	e.Cross = cross
	for _, field := range strings.Fields(line) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return e, fmt.Errorf("bad_file_format: malformed field %q", field)
		}
		key, val := kv[0], kv[1]
		switch key {
		case "strip":
			e.Strip = val
		case "append":
			e.Append = val
		case "cond":
			re, err := regexp.Compile(val)
			if err != nil {
				return e, fmt.Errorf("invalid_affix: bad condition %q: %w", val, err)
			}
			e.Cond = re
		default:
			return e, fmt.Errorf("bad_file_format: unknown field %q", key)
		}
	}
	return e, nil
}
