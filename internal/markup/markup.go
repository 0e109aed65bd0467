// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup renders the rich-text description fields of an export into
// report-friendly text. Two renderers exist: plain text (tags dropped) and
// Markdown.
package markup

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/mbse-export/pkg/types"
)

// Renderer turns a raw markup string into report text.
type Renderer interface {
	Render(markup string) string
}

// New returns the renderer for the given description format.
func New(format types.DescriptionFormat) (Renderer, error) {
	switch format {
	case types.DescriptionText, "":
		return NewPlainText(), nil
	case types.DescriptionMarkdown:
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported description format %q: use text or markdown", format)
	}
}

// PlainText strips every tag and normalizes whitespace. The result is
// trimmed, each "\n\n" pair is dropped and tabs become spaces.
type PlainText struct {
	policy *bluemonday.Policy
}

// NewPlainText returns a PlainText renderer.
func NewPlainText() *PlainText {
	return &PlainText{policy: bluemonday.StrictPolicy()}
}

// Render implements Renderer.
func (p *PlainText) Render(markup string) string {
	if markup == "" {
		return ""
	}
	// StrictPolicy escapes the text it keeps; undo that so "&" stays "&".
	text := html.UnescapeString(p.policy.Sanitize(markup))
	return normalize(text)
}

// Strip is PlainText rendering with a shared policy.
func Strip(markup string) string {
	return defaultPlain.Render(markup)
}

var defaultPlain = NewPlainText()

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n\n", "")
	return strings.ReplaceAll(s, "\t", " ")
}

// Markdown converts markup to CommonMark. When conversion fails or yields
// nothing it falls back to plain text.
type Markdown struct {
	conv     *converter.Converter
	fallback *PlainText
}

// NewMarkdown returns a Markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		fallback: NewPlainText(),
	}
}

// Render implements Renderer.
func (m *Markdown) Render(markup string) string {
	if markup == "" {
		return ""
	}
	out, err := m.conv.ConvertString(markup)
	if err != nil || strings.TrimSpace(out) == "" {
		return m.fallback.Render(markup)
	}
	return strings.ReplaceAll(strings.TrimSpace(out), "\t", " ")
}
