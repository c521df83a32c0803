// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package readme turns a whiteboard node tree into a Markdown outline.
//
// Sections become headings, sticky notes and labelled shapes become list
// items, link previews become Markdown links, and groups and frames are
// flattened into their parent. A node that fails to render is replaced by
// an inline error marker so the rest of the board still converts.
package readme

import (
	"fmt"
	"strings"

	"github.com/pdiddy/board-readme/pkg/types"
)

const (
	// separator follows every top-level section.
	separator = "\n---\n\n"

	noTextPlaceholder = "[No text content]"
	defaultLinkLabel  = "Link"
)

// RenderError reports a node that could not be rendered.
type RenderError struct {
	Kind types.NodeKind
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s node: %v", e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Converter renders board trees to Markdown. It holds no per-call state and
// may be reused across boards.
type Converter struct {
	obs Observer
}

// NewConverter returns a Converter reporting to obs. A nil obs discards all
// events.
func NewConverter(obs Observer) *Converter {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Converter{obs: obs}
}

// ConvertBoard renders b with its own name as the document title.
func (c *Converter) ConvertBoard(b *types.Board) string {
	return c.Convert(b.Name, b.Children)
}

// Convert renders the top-level nodes under a level-one title heading. A
// trailing section separator is dropped so the document does not end in a
// horizontal rule.
func (c *Converter) Convert(title string, nodes []types.Node) string {
	c.obs.Started(title, len(nodes))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, n := range nodes {
		b.WriteString(c.processNode(n, 0, true))
	}

	content := strings.TrimSuffix(b.String(), separator)
	c.obs.Finished(len(content))
	return content
}

// processNode renders one node. Render failures, panics included, are
// reported to the observer and replaced by a one-line marker.
func (c *Converter) processNode(n types.Node, indent int, topLevel bool) (out string) {
	if n == nil {
		return ""
	}
	kind := n.Kind()
	defer func() {
		if r := recover(); r != nil {
			out = c.fail(kind, &RenderError{Kind: kind, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	c.obs.Node(kind, indent)
	rendered, err := c.render(n, indent, topLevel)
	if err != nil {
		return c.fail(kind, err)
	}
	return rendered
}

func (c *Converter) fail(kind types.NodeKind, err error) string {
	c.obs.Failed(kind, err)
	return fmt.Sprintf("- [Error processing %s]\n", kind)
}

func (c *Converter) render(n types.Node, indent int, topLevel bool) (string, error) {
	switch v := n.(type) {
	case *types.SectionNode:
		return c.processSection(v, indent, topLevel)
	case *types.TextNode:
		return c.processText(v, indent)
	case *types.LinkUnfurlNode:
		return c.processLinkUnfurl(v)
	case *types.ContainerNode:
		return c.processContainer(v, indent)
	case *types.InvalidNode:
		return "", &RenderError{Kind: v.NodeType, Err: v.Err}
	default:
		c.obs.Unhandled(n.Kind())
		return "", nil
	}
}

// processSection emits a heading one level deeper than its parent, then its
// children one indent deeper.
func (c *Converter) processSection(s *types.SectionNode, indent int, topLevel bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", indent+2), s.Name)

	for _, child := range s.Children {
		b.WriteString(c.processNode(child, indent+1, false))
	}

	if topLevel {
		b.WriteString(separator)
	}
	return b.String(), nil
}

// processText emits a list item. Text containing a URL is linked to the
// first URL found.
func (c *Converter) processText(n *types.TextNode, indent int) (string, error) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("- ")

	if n.Text == nil {
		b.WriteString(noTextPlaceholder + "\n")
		return b.String(), nil
	}

	text := *n.Text
	if links := ExtractLinks(text); len(links) > 0 {
		fmt.Fprintf(&b, "[%s](%s)\n", text, links[0])
	} else {
		b.WriteString(text + "\n")
	}
	return b.String(), nil
}

// processLinkUnfurl emits a link item. Without unfurl data the target is
// left empty.
func (c *Converter) processLinkUnfurl(n *types.LinkUnfurlNode) (string, error) {
	label, url := defaultLinkLabel, ""
	if n.Data != nil {
		url = n.Data.URL
		label = n.Data.Title
		if label == "" {
			label = url
		}
	}
	return fmt.Sprintf("- [%s](%s)\n", label, url), nil
}

func (c *Converter) processContainer(n *types.ContainerNode, indent int) (string, error) {
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(c.processNode(child, indent, false))
	}
	return b.String(), nil
}
