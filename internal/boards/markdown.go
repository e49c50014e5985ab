package boards

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders card descriptions. Raw HTML in the source is dropped.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}
}

// Render converts markdown content to HTML
func (m *Markdown) Render(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(content), &buf); err != nil {
		return html.EscapeString(content)
	}
	return buf.String()
}
