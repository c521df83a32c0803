// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package board loads whiteboard exports (JSON or YAML) into a node tree.
//
// A node of an unknown type is kept as an UnknownNode. A node of a known
// type whose body cannot be decoded is kept as an InvalidNode so one broken
// node never prevents the rest of the board from loading.
package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/board-readme/pkg/types"
)

// Format identifies the encoding of a board file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatError reports a board file whose extension is not supported.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported board file %s: want .json, .yaml or .yml", e.Path)
}

// ErrNotBoard is returned when the document root is not a board object.
var ErrNotBoard = errors.New("document is not a board")

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &FormatError{Path: path}
	}
}

// Load reads and decodes the board file at path. A board without a name is
// named after the file.
func Load(path string) (*types.Board, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board: %w", err)
	}
	b, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return b, nil
}

// Parse decodes board data in the given format.
func Parse(data []byte, format Format) (*types.Board, error) {
	var root source
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, ErrNotBoard
		}
		root = jsonSource(trimmed)
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			return nil, ErrNotBoard
		}
		root = yamlSource{doc.Content[0]}
	default:
		return nil, fmt.Errorf("unknown board format %q", format)
	}

	var header struct {
		Name string `json:"name" yaml:"name"`
	}
	if err := root.Decode(&header); err != nil {
		return nil, fmt.Errorf("decoding board: %w", err)
	}
	children, err := root.Children()
	if err != nil {
		return nil, fmt.Errorf("decoding board children: %w", err)
	}

	return &types.Board{
		Name:     header.Name,
		Children: buildNodes(children),
	}, nil
}

// nodeFields holds every scalar field any node kind may carry.
type nodeFields struct {
	Type           types.NodeKind        `json:"type" yaml:"type"`
	Name           string                `json:"name" yaml:"name"`
	Text           *string               `json:"text" yaml:"text"`
	Characters     *string               `json:"characters" yaml:"characters"`
	LinkUnfurlData *types.LinkUnfurlData `json:"linkUnfurlData" yaml:"linkUnfurlData"`
}

func buildNodes(children []source) []types.Node {
	nodes := make([]types.Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, buildNode(c))
	}
	return nodes
}

func buildNode(src source) types.Node {
	var tag struct {
		Type types.NodeKind `json:"type" yaml:"type"`
	}
	// A node whose type cannot be read is indistinguishable from an
	// unsupported one.
	if err := src.Decode(&tag); err != nil {
		return &types.UnknownNode{}
	}

	if !known(tag.Type) {
		return &types.UnknownNode{NodeType: tag.Type}
	}

	var f nodeFields
	if err := src.Decode(&f); err != nil {
		return &types.InvalidNode{NodeType: tag.Type, Err: err}
	}

	switch tag.Type {
	case types.KindSection:
		children, err := src.Children()
		if err != nil {
			return &types.InvalidNode{NodeType: tag.Type, Err: err}
		}
		return &types.SectionNode{Name: f.Name, Children: buildNodes(children)}
	case types.KindGroup, types.KindFrame:
		children, err := src.Children()
		if err != nil {
			return &types.InvalidNode{NodeType: tag.Type, Err: err}
		}
		return &types.ContainerNode{NodeType: tag.Type, Children: buildNodes(children)}
	case types.KindSticky, types.KindShapeWithText:
		text := f.Text
		if text == nil {
			text = f.Characters
		}
		return &types.TextNode{NodeType: tag.Type, Text: text}
	default:
		return &types.LinkUnfurlNode{Data: f.LinkUnfurlData}
	}
}

func known(kind types.NodeKind) bool {
	switch kind {
	case types.KindSection, types.KindSticky, types.KindShapeWithText,
		types.KindLinkUnfurl, types.KindGroup, types.KindFrame:
		return true
	}
	return false
}

// source is one encoded object in a board file.
type source interface {
	// Decode decodes the object's fields into v.
	Decode(v any) error
	// Children returns the encoded elements of the object's children list.
	// A missing list yields no children; a list of the wrong shape is an
	// error.
	Children() ([]source, error)
}

type jsonSource json.RawMessage

func (s jsonSource) Decode(v any) error {
	return json.Unmarshal(s, v)
}

func (s jsonSource) Children() ([]source, error) {
	var obj struct {
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(s, &obj); err != nil {
		return nil, err
	}
	out := make([]source, len(obj.Children))
	for i, c := range obj.Children {
		out[i] = jsonSource(c)
	}
	return out, nil
}

type yamlSource struct {
	node *yaml.Node
}

func (s yamlSource) Decode(v any) error {
	return s.node.Decode(v)
}

func (s yamlSource) Children() ([]source, error) {
	if s.node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: node is not a mapping", s.node.Line)
	}
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		if s.node.Content[i].Value != "children" {
			continue
		}
		list := s.node.Content[i+1]
		if list.Tag == "!!null" {
			return nil, nil
		}
		if list.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: children is not a list", list.Line)
		}
		out := make([]source, len(list.Content))
		for j, c := range list.Content {
			out[j] = yamlSource{c}
		}
		return out, nil
	}
	return nil, nil
}
