package filter

import (
	"strings"
	"testing"

	"github.com/aspellgo/aspellgo/lang"
)

func charsOf(s string) lang.Text {
	out := make(lang.Text, len(s)+1)
	for i := 0; i < len(s); i++ {
		out[i] = lang.Character{Code: s[i], Width: 1}
	}
	out[len(s)] = lang.Sentinel
	return out
}

func stringOf(text lang.Text) string {
	b := make([]byte, 0, len(text))
	for _, c := range text {
		if c == lang.Sentinel {
			break
		}
		b = append(b, c.Code)
	}
	return string(b)
}

func TestChainOrdersByOrder(t *testing.T) {
	c := New()
	late, _ := NewHTMLTag(nil)
	early, _ := NewTexComment(nil)
	if err := c.AddFilter(late); err != nil {
		t.Fatalf("AddFilter: %v", err)
	}
	if err := c.AddFilter(early); err != nil {
		t.Fatalf("AddFilter: %v", err)
	}
	stages := c.Stages()
	if len(stages) != 2 || stages[0].Name() != "tex-comment" || stages[1].Name() != "html-tag" {
		t.Fatalf("chain not sorted by order: %v, %v", stages[0].Name(), stages[1].Name())
	}
}

func TestAddFilterRejectsOutOfRangeOrder(t *testing.T) {
	c := New()
	bad := &TexComment{order: 1.5}
	if err := c.AddFilter(bad); err == nil {
		t.Fatalf("expected an error for an order outside (0,1)")
	}
}

func TestTexCommentBlanksToNewline(t *testing.T) {
	text := charsOf("keep % drop this\nkeep")
	c := New()
	stage, _ := NewTexComment(nil)
	c.AddFilter(stage)

	out := c.Process(DecoderKind, text, 0, len(text)-1)
	want := "keep" + strings.Repeat(" ", 12) + "\nkeep"
	if got := stringOf(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if len(out) != len(text) {
		t.Fatalf("blanking must not change unit count: got %d, want %d", len(out), len(text))
	}
}

func TestHTMLTagBlanksWholeTag(t *testing.T) {
	text := charsOf("see <b>bold</b> now")
	c := New()
	stage, _ := NewHTMLTag(nil)
	c.AddFilter(stage)

	out := c.Process(FilterKind, text, 0, len(text)-1)
	got := stringOf(out)
	want := "see    bold     now"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseModeDescriptor(t *testing.T) {
	data := []byte("version 1\nmode html\nfilter html-tag\noption html-tag.strip true\n")
	d, err := ParseModeDescriptor(data)
	if err != nil {
		t.Fatalf("ParseModeDescriptor: %v", err)
	}
	if d.Name != "html" {
		t.Errorf("Name = %q, want html", d.Name)
	}
	if len(d.Filters) != 1 || d.Filters[0] != "html-tag" {
		t.Errorf("Filters = %v", d.Filters)
	}
	if d.Options["html-tag.strip"] != "true" {
		t.Errorf("Options = %v", d.Options)
	}
}

func TestParseModeDescriptorBadVersion(t *testing.T) {
	_, err := ParseModeDescriptor([]byte("version 99\nmode html\n"))
	if err == nil {
		t.Fatalf("expected a bad_version error")
	}
}

func TestParseModeDescriptorMissingValue(t *testing.T) {
	_, err := ParseModeDescriptor([]byte("version 1\nmode html\noption html-tag.strip\n"))
	if err == nil {
		t.Fatalf("expected an empty_value error")
	}
}

func TestRegistryUnknownFilter(t *testing.T) {
	r := NewRegistry()
	c := New()
	d := &ModeDescriptor{Name: "mystery", Filters: []string{"does-not-exist"}, Options: map[string]string{}}
	if err := r.Build(c, d); err == nil {
		t.Fatalf("expected a no_such_filter error")
	}
}

func TestDefaultRegistryBuildsModes(t *testing.T) {
	r := DefaultRegistry()
	c := New()
	d := &ModeDescriptor{Name: "html", Filters: []string{"html-tag"}, Options: map[string]string{}}
	if err := r.Build(c, d); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Stages()) != 1 {
		t.Fatalf("expected one stage installed")
	}
}
