// Package aspellcfg implements new_config: a merged view of a
// default key set, key sets contributed by filter modules, and user
// overrides, layered with viper.SetDefault, AutomaticEnv, and
// SetEnvKeyReplacer. Unlike a fixed struct-shaped config, keys aren't all
// known ahead of time — filter modules contribute their own at runtime,
// so the store stays an open key/value map with a list-mutation grammar
// layered on top.
package aspellcfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ValueKind is one of the recognized config value types.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindBool
	KindList
)

// Config is a merged key/value store: defaults, then filter-module
// contributed keys, then user overrides (ASPELL_CONF, then explicit Set
// calls), in that priority order -- viper's own provider layering is
// exactly this merge.
type Config struct {
	v        *viper.Viper
	defaults map[string]any // recorded separately so reset- can restore a key viper.Set has shadowed
}

// New builds a Config with aspell's standard defaults.
func New() *Config {
	v := viper.New()
	v.SetEnvPrefix("ASPELL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	c := &Config{v: v, defaults: make(map[string]any)}
	c.setDefault("lang", "en")
	c.setDefault("encoding", "utf-8")
	c.setDefault("data-encoding", "")
	c.setDefault("size", "60")
	c.setDefault("run-together", false)
	c.setDefault("run-together-min", 3)
	c.setDefault("run-together-limit", 4)
	c.setDefault("ignore-case", false)
	c.setDefault("ignore-accents", false)
	c.setDefault("span-strings", false)
	c.setDefault("filter", []string{})
	c.setDefault("home-dir", "<$HOME|/>")
	c.setDefault("data-dir", "<home-dir/.aspellgo>")
	c.setDefault("personal", "<data-dir/personal.pws>")
	c.setDefault("repl", "<data-dir/personal.prepl>")

	return c
}

func (c *Config) setDefault(key string, value any) {
	c.v.SetDefault(key, value)
	c.defaults[key] = value
}

// AddFilterDefaults lets a filter module contribute its own keys into the
// merged view; these sit between New's built-in defaults and any override
// applied afterward.
func (c *Config) AddFilterDefaults(keys map[string]any) {
	for k, v := range keys {
		c.setDefault(k, v)
	}
}

// String returns a string-valued key, resolving any <...> interpolation
// forms.
func (c *Config) String(key string) string {
	return c.Interpolate(c.v.GetString(key))
}

func (c *Config) Int(key string) int        { return c.v.GetInt(key) }
func (c *Config) Bool(key string) bool      { return c.v.GetBool(key) }
func (c *Config) List(key string) []string  { return c.v.GetStringSlice(key) }

// SetString/SetInt/SetBool/SetList apply an explicit user override, the
// highest-priority layer.
func (c *Config) SetString(key, value string) { c.v.Set(key, value) }
func (c *Config) SetInt(key string, value int) { c.v.Set(key, value) }
func (c *Config) SetBool(key string, value bool) { c.v.Set(key, value) }
func (c *Config) SetList(key string, value []string) { c.v.Set(key, value) }

// ApplyKey applies one key=value pair using the list-mutation-prefix
// grammar: enable-/disable-/dont- toggle a bool; reset- clears a key back
// to its default; lset- replaces a list wholesale; add-/remove-/rem- add
// or remove one element of a list; clear- empties a list.
func (c *Config) ApplyKey(key, value string) error {
	switch {
	case strings.HasPrefix(key, "enable-"):
		c.SetBool(strings.TrimPrefix(key, "enable-"), true)
		return nil
	case strings.HasPrefix(key, "disable-"):
		c.SetBool(strings.TrimPrefix(key, "disable-"), false)
		return nil
	case strings.HasPrefix(key, "dont-"):
		c.SetBool(strings.TrimPrefix(key, "dont-"), false)
		return nil
	case strings.HasPrefix(key, "reset-"):
		base := strings.TrimPrefix(key, "reset-")
		c.v.Set(base, c.defaults[base])
		return nil
	case strings.HasPrefix(key, "lset-"):
		c.SetList(strings.TrimPrefix(key, "lset-"), splitList(value))
		return nil
	case strings.HasPrefix(key, "add-"):
		base := strings.TrimPrefix(key, "add-")
		c.SetList(base, append(c.List(base), value))
		return nil
	case strings.HasPrefix(key, "remove-"), strings.HasPrefix(key, "rem-"):
		base := strings.TrimPrefix(strings.TrimPrefix(key, "remove-"), "rem-")
		c.SetList(base, removeElem(c.List(base), value))
		return nil
	case strings.HasPrefix(key, "clear-"):
		c.SetList(strings.TrimPrefix(key, "clear-"), nil)
		return nil
	}
	// Plain key=value: infer a type from value's syntax.
	switch {
	case value == "true" || value == "false":
		b, _ := strconv.ParseBool(value)
		c.SetBool(key, b)
	case isInt(value):
		n, _ := strconv.Atoi(value)
		c.SetInt(key, n)
	default:
		c.SetString(key, value)
	}
	return nil
}

// ApplyConfString parses an ASPELL_CONF-style ";"-separated override
// string and applies each "key=value" or bare "key" (boolean-true) pair
// in order.
func (c *Config) ApplyConfString(conf string) error {
	for _, part := range strings.Split(conf, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			key, value = part, "true"
		}
		if err := c.ApplyKey(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("bad_value: %s: %w", part, err)
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func removeElem(list []string, target string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func isInt(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// Interpolate resolves the default-string interpolation forms:
// "<key>" substitutes another key's value, "<a/b>" resolves b
// as a path under key a, "<a:b>" concatenates a and b, "<a^b>" takes the
// directory component of key a's value joined with b, "<$VAR|default>"
// reads an environment variable with a fallback, and "!lang"/"!encoding"
// are built-in specials resolving to the active language/encoding keys.
func (c *Config) Interpolate(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '<' {
			out.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			out.WriteString(s[i:])
			break
		}
		expr := s[i+1 : i+end]
		out.WriteString(c.resolveExpr(expr))
		i += end + 1
	}
	return out.String()
}

func (c *Config) resolveExpr(expr string) string {
	switch {
	case strings.HasPrefix(expr, "$"):
		name, def, _ := strings.Cut(expr[1:], "|")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	case expr == "!lang":
		return c.v.GetString("lang")
	case expr == "!encoding":
		return c.v.GetString("encoding")
	case strings.Contains(expr, "/"):
		a, b, _ := strings.Cut(expr, "/")
		return strings.TrimRight(c.String(a), "/") + "/" + b
	case strings.Contains(expr, "^"):
		a, b, _ := strings.Cut(expr, "^")
		dir := c.String(a)
		if slash := strings.LastIndexByte(dir, '/'); slash >= 0 {
			dir = dir[:slash]
		}
		return dir + "/" + b
	case strings.Contains(expr, ":"):
		a, b, _ := strings.Cut(expr, ":")
		return c.String(a) + c.String(b)
	default:
		return c.String(expr)
	}
}
