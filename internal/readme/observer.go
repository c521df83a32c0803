// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package readme

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/board-readme/pkg/types"
)

// Observer receives diagnostic events while a board is converted. Events
// never influence the generated Markdown.
type Observer interface {
	// Started is called once with the number of top-level nodes.
	Started(title string, topLevel int)
	// Node is called before each node is dispatched with the list indent
	// it renders at. Groups and frames do not add indent.
	Node(kind types.NodeKind, indent int)
	// Unhandled is called for nodes whose kind has no renderer.
	Unhandled(kind types.NodeKind)
	// Failed is called when rendering a node fails; the node is replaced
	// by an error marker.
	Failed(kind types.NodeKind, err error)
	// Finished is called once with the length of the final document.
	Finished(length int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Started(string, int) {}
func (NopObserver) Node(types.NodeKind, int) {}
func (NopObserver) Unhandled(types.NodeKind) {}
func (NopObserver) Failed(types.NodeKind, error) {}
func (NopObserver) Finished(int) {}

// LogObserver writes events as plain status lines to w. Per-node lines are
// written only when verbose is set; failures and totals are always written.
type LogObserver struct {
	w       io.Writer
	verbose bool
}

// NewLogObserver returns an observer that logs to w.
func NewLogObserver(w io.Writer, verbose bool) *LogObserver {
	return &LogObserver{w: w, verbose: verbose}
}

func (o *LogObserver) Started(title string, topLevel int) {
	fmt.Fprintf(o.w, "converting %q: %d top-level nodes\n", title, topLevel)
}

func (o *LogObserver) Node(kind types.NodeKind, indent int) {
	if o.verbose {
		fmt.Fprintf(o.w, "  processing %s (indent %d)\n", kind, indent)
	}
}

func (o *LogObserver) Unhandled(kind types.NodeKind) {
	if o.verbose {
		fmt.Fprintf(o.w, "  unhandled node type: %s\n", kind)
	}
}

func (o *LogObserver) Failed(kind types.NodeKind, err error) {
	fmt.Fprintf(o.w, "  error processing %s: %v\n", kind, err)
}

func (o *LogObserver) Finished(length int) {
	fmt.Fprintf(o.w, "final content length: %d\n", length)
}

// Stats counts conversion events. The zero value is ready to use.
type Stats struct {
	TopLevel int
	Nodes    int
	Ignored  int
	Errors   int
	Length   int
	ByKind   map[types.NodeKind]int
}

func (s *Stats) Started(_ string, topLevel int) {
	s.TopLevel = topLevel
}

func (s *Stats) Node(kind types.NodeKind, _ int) {
	if s.ByKind == nil {
		s.ByKind = make(map[types.NodeKind]int)
	}
	s.Nodes++
	s.ByKind[kind]++
}

func (s *Stats) Unhandled(types.NodeKind) { s.Ignored++ }

func (s *Stats) Failed(types.NodeKind, error) { s.Errors++ }

func (s *Stats) Finished(length int) { s.Length = length }

// Kinds returns the node kinds seen, sorted by name.
func (s *Stats) Kinds() []types.NodeKind {
	kinds := make([]types.NodeKind, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// MultiObserver forwards every event to each of its observers in order.
type MultiObserver []Observer

func (m MultiObserver) Started(title string, topLevel int) {
	for _, o := range m {
		o.Started(title, topLevel)
	}
}

func (m MultiObserver) Node(kind types.NodeKind, indent int) {
	for _, o := range m {
		o.Node(kind, indent)
	}
}

func (m MultiObserver) Unhandled(kind types.NodeKind) {
	for _, o := range m {
		o.Unhandled(kind)
	}
}

func (m MultiObserver) Failed(kind types.NodeKind, err error) {
	for _, o := range m {
		o.Failed(kind, err)
	}
}

func (m MultiObserver) Finished(length int) {
	for _, o := range m {
		o.Finished(length)
	}
}
