package lang

import "strings"

// ParseDat parses a <name>.dat key/value file: whitespace
// separated "key value..." lines, blank lines and "#" comments ignored.
// Repeated keys keep only the last value; use ParseDatMulti for keys (like
// "special") that may legitimately repeat.
func ParseDat(data []byte) map[string]string {
	out := make(map[string]string)
	for k, vs := range ParseDatMulti(data) {
		out[k] = vs[len(vs)-1]
	}
	return out
}

// ParseDatMulti is like ParseDat but keeps every value for a repeated key,
// in file order.
func ParseDatMulti(data []byte) map[string][]string {
	out := make(map[string][]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		out[fields[0]] = append(out[fields[0]], strings.Join(fields[1:], " "))
	}
	return out
}
