// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns generated README Markdown into HTML and extracts its
// heading outline, both through goldmark.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one heading of a Markdown document.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// HTML renders markdown into a standalone HTML page titled title. Raw HTML
// in the source is omitted by goldmark's default renderer.
func HTML(markdown, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := newEngine().Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

// Outline returns the headings of markdown in document order. Headings
// deeper than level six are not headings in CommonMark and are not listed.
func Outline(markdown string) []Heading {
	src := []byte(markdown)
	doc := newEngine().Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{Level: h.Level, Text: plainText(h, src)})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// FormatOutline renders headings as an indented tree, two spaces per level
// below the first.
func FormatOutline(headings []Heading) string {
	var b strings.Builder
	for _, h := range headings {
		indent := h.Level - 1
		if indent < 0 {
			indent = 0
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", indent), h.Text)
	}
	return b.String()
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		default:
			b.WriteString(plainText(c, src))
		}
	}
	return b.String()
}
