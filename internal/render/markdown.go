// Package render turns resolved Markdown into HTML pages using goldmark and
// the theme's html/template layouts.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownOptions mirrors the markdown section of the configuration.
type MarkdownOptions struct {
	HardWraps bool
	// Unsafe lets raw HTML in articles through to the output.
	Unsafe bool
}

// Markdown converts Markdown to HTML. It holds no per-call state and can be
// reused across articles.
type Markdown struct {
	engine goldmark.Markdown
}

func NewMarkdown(opts MarkdownOptions) *Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}

	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.TaskList),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}
}

// Convert renders src as HTML.
func (m *Markdown) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
