package filter

import "github.com/aspellgo/aspellgo/lang"

// TexComment blanks from a '%' unit to the next newline, the one piece of
// TeX syntax the "tex" mode calls out by name.
type TexComment struct {
	order float64
}

// NewTexComment builds the tex-comment Decoder stage. No options are
// required; registries pass an empty map.
func NewTexComment(options map[string]string) (Stage, error) {
	return &TexComment{order: 0.1}, nil
}

func (f *TexComment) Name() string    { return "tex-comment" }
func (f *TexComment) Kind() Kind      { return DecoderKind }
func (f *TexComment) Order() float64  { return f.order }

func (f *TexComment) Process(text lang.Text, begin, end int) lang.Text {
	i := begin
	for i < end && i < len(text) {
		if text[i].Code != '%' {
			i++
			continue
		}
		j := i
		for j < end && j < len(text) && text[j].Code != '\n' {
			j++
		}
		Blank(text, i, j)
		i = j
	}
	return text
}

// HTMLTag blanks an entire "<...>" span, the Filter-kind stage the format's
// "html" mode installs to keep markup out of the tokenizer's word spans
// without shifting any byte offset.
type HTMLTag struct {
	order float64
}

// NewHTMLTag builds the html-tag Filter stage.
func NewHTMLTag(options map[string]string) (Stage, error) {
	return &HTMLTag{order: 0.5}, nil
}

func (f *HTMLTag) Name() string   { return "html-tag" }
func (f *HTMLTag) Kind() Kind     { return FilterKind }
func (f *HTMLTag) Order() float64 { return f.order }

func (f *HTMLTag) Process(text lang.Text, begin, end int) lang.Text {
	i := begin
	for i < end && i < len(text) {
		if text[i].Code != '<' {
			i++
			continue
		}
		j := i
		for j < end && j < len(text) && text[j].Code != '>' {
			j++
		}
		if j < end && j < len(text) {
			j++ // include the closing '>'
		}
		Blank(text, i, j)
		i = j
	}
	return text
}

// DefaultRegistry returns a Registry pre-populated with the stages this
// module ships.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("tex-comment", NewTexComment)
	r.Register("html-tag", NewHTMLTag)
	return r
}
