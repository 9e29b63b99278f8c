package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"cawver-web/pkg/validator"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// RenderMarkdown converts source to HTML and strips anything the UGC policy
// does not allow. Raw HTML in the source is dropped by goldmark.
func RenderMarkdown(source string) (template.HTML, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return template.HTML(validator.SanitizeHTML(buf.String())), nil
}

func (p *Prose) render() error {
	html, err := RenderMarkdown(p.Source)
	if err != nil {
		return err
	}
	p.HTML = html
	return nil
}
