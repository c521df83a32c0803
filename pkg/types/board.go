// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NodeKind is the type tag carried by every board node.
type NodeKind string

const (
	KindSection       NodeKind = "SECTION"
	KindSticky        NodeKind = "STICKY"
	KindShapeWithText NodeKind = "SHAPE_WITH_TEXT"
	KindLinkUnfurl    NodeKind = "LINK_UNFURL"
	KindGroup         NodeKind = "GROUP"
	KindFrame         NodeKind = "FRAME"

	// KindUnknown labels a nil node whose kind cannot be read.
	KindUnknown NodeKind = "UNKNOWN"
)

// Board is the root of a whiteboard export: a titled, ordered list of
// top-level nodes.
type Board struct {
	// Name is the board title; it becomes the document's level-one heading.
	Name string `json:"name" yaml:"name"`

	// Children holds the top-level nodes in source order.
	Children []Node `json:"-" yaml:"-"`
}

// Node is one element of a board tree. The set of implementations is
// closed: SectionNode, TextNode, LinkUnfurlNode, ContainerNode, UnknownNode
// and InvalidNode.
type Node interface {
	Kind() NodeKind
	node()
}

// SectionNode is a titled grouping that becomes a Markdown heading.
type SectionNode struct {
	Name     string
	Children []Node
}

// TextNode is a sticky note or a shape with a text label. Text is nil when
// the node carries no text field at all.
type TextNode struct {
	NodeType NodeKind
	Text     *string
}

// LinkUnfurlData is the preview metadata attached to a link node.
type LinkUnfurlData struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// LinkUnfurlNode is a link preview card. Data is nil when the board did not
// resolve the preview.
type LinkUnfurlNode struct {
	Data *LinkUnfurlData
}

// ContainerNode is a group or frame: a visual container with no heading.
type ContainerNode struct {
	NodeType NodeKind
	Children []Node
}

// UnknownNode is any node whose kind is not handled by the converter.
type UnknownNode struct {
	NodeType NodeKind
}

// InvalidNode is a node of a known kind whose body could not be decoded.
type InvalidNode struct {
	NodeType NodeKind
	Err      error
}

// Kind is safe to call on a nil pointer. A nil TextNode reports STICKY, a
// nil ContainerNode GROUP, and nil Unknown and Invalid nodes UNKNOWN.
func (n *SectionNode) Kind() NodeKind { return KindSection }

func (n *TextNode) Kind() NodeKind {
	if n == nil {
		return KindSticky
	}
	return n.NodeType
}

func (n *LinkUnfurlNode) Kind() NodeKind { return KindLinkUnfurl }

func (n *ContainerNode) Kind() NodeKind {
	if n == nil {
		return KindGroup
	}
	return n.NodeType
}

func (n *UnknownNode) Kind() NodeKind {
	if n == nil {
		return KindUnknown
	}
	return n.NodeType
}

func (n *InvalidNode) Kind() NodeKind {
	if n == nil {
		return KindUnknown
	}
	return n.NodeType
}

func (*SectionNode) node() {}
func (*TextNode) node() {}
func (*LinkUnfurlNode) node() {}
func (*ContainerNode) node() {}
func (*UnknownNode) node() {}
func (*InvalidNode) node() {}

// Text returns a pointer to s, for building TextNodes in literals.
func Text(s string) *string {
	return &s
}

// Walk visits nodes depth-first in source order, calling fn with each node
// and its depth (0 for the nodes passed in). If fn returns false the node's
// children are not visited.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !fn(n, depth) {
			continue
		}
		switch v := n.(type) {
		case *SectionNode:
			walk(v.Children, depth+1, fn)
		case *ContainerNode:
			walk(v.Children, depth+1, fn)
		}
	}
}

// CountNodes returns the total number of nodes in the tree, nested nodes
// included.
func CountNodes(nodes []Node) int {
	total := 0
	Walk(nodes, func(Node, int) bool {
		total++
		return true
	})
	return total
}
