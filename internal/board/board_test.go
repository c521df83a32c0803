// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/board-readme/internal/readme"
	"github.com/pdiddy/board-readme/pkg/types"
)

const sprintMarkdown = "# Sprint Planning\n\n" +
	"## Goals\n\n" +
	"  - Ship the importer\n" +
	"  - [Tracking issue https://example.com/issues/42](https://example.com/issues/42)\n" +
	"### Stretch\n\n" +
	"    - Dark mode\n" +
	"\n---\n\n" +
	"- [The Go Programming Language](https://go.dev)\n" +
	"- [Link]()\n" +
	"- [Error processing FRAME]\n" +
	"## Risks\n\n" +
	"  - [No text content]\n"

func TestLoad_Fixtures(t *testing.T) {
	for _, name := range []string{"sprint.json", "sprint.yaml"} {
		t.Run(name, func(t *testing.T) {
			b, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "Sprint Planning", b.Name)
			require.Len(t, b.Children, 5)

			goals, ok := b.Children[0].(*types.SectionNode)
			require.True(t, ok, "first child should be a section")
			assert.Equal(t, "Goals", goals.Name)
			require.Len(t, goals.Children, 3)

			stretch := goals.Children[2].(*types.SectionNode)
			shape := stretch.Children[0].(*types.TextNode)
			assert.Equal(t, types.KindShapeWithText, shape.NodeType)
			require.NotNil(t, shape.Text)
			assert.Equal(t, "Dark mode", *shape.Text)

			grp := b.Children[1].(*types.ContainerNode)
			assert.Equal(t, types.KindGroup, grp.NodeType)
			link := grp.Children[0].(*types.LinkUnfurlNode)
			require.NotNil(t, link.Data)
			assert.Equal(t, "https://go.dev", link.Data.URL)
			assert.Nil(t, grp.Children[1].(*types.LinkUnfurlNode).Data)

			assert.Equal(t, &types.UnknownNode{NodeType: "CONNECTOR"}, b.Children[2])

			invalid, ok := b.Children[3].(*types.InvalidNode)
			require.True(t, ok, "frame with bad children should be invalid")
			assert.Equal(t, types.KindFrame, invalid.NodeType)
			assert.Error(t, invalid.Err)

			risks := b.Children[4].(*types.SectionNode)
			assert.Nil(t, risks.Children[0].(*types.TextNode).Text)

			assert.Equal(t, sprintMarkdown, readme.NewConverter(nil).ConvertBoard(b))
		})
	}
}

func TestLoad_NameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "team-retro.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"children": []}`), 0o644))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "team-retro", b.Name)
	assert.Empty(t, b.Children)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "unsupported extension", file: "board.txt", content: "{}", errMsg: "unsupported board file"},
		{name: "missing file", file: "", errMsg: "reading board"},
		{name: "json array root", file: "b.json", content: `[1, 2]`, errMsg: "not a board"},
		{name: "malformed json", file: "b.json", content: `{"name": `, errMsg: "decoding board"},
		{name: "json children not a list", file: "b.json", content: `{"name": "x", "children": 3}`, errMsg: "decoding board children"},
		{name: "yaml scalar root", file: "b.yaml", content: "just text\n", errMsg: "not a board"},
		{name: "empty yaml", file: "b.yml", content: "", errMsg: "not a board"},
		{name: "yaml children not a list", file: "b.yaml", content: "name: x\nchildren: nope\n", errMsg: "children is not a list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "missing.json")
			if tt.file != "" {
				path = filepath.Join(dir, tt.file)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_NodeTolerance(t *testing.T) {
	tests := []struct {
		name string
		json string
		want types.Node
	}{
		{
			name: "non-object child is unknown",
			json: `"loose string"`,
			want: &types.UnknownNode{},
		},
		{
			name: "missing type is unknown",
			json: `{"text": "orphan"}`,
			want: &types.UnknownNode{},
		},
		{
			name: "text prefers text over characters",
			json: `{"type": "STICKY", "text": "a", "characters": "b"}`,
			want: &types.TextNode{NodeType: types.KindSticky, Text: types.Text("a")},
		},
		{
			name: "empty text is kept",
			json: `{"type": "STICKY", "text": ""}`,
			want: &types.TextNode{NodeType: types.KindSticky, Text: types.Text("")},
		},
		{
			name: "section without children",
			json: `{"type": "SECTION", "name": "Solo"}`,
			want: &types.SectionNode{Name: "Solo", Children: []types.Node{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse([]byte(`{"name": "B", "children": [`+tt.json+`]}`), FormatJSON)
			require.NoError(t, err)
			require.Len(t, b.Children, 1)
			assert.Equal(t, tt.want, b.Children[0])
		})
	}
}

func TestParse_WrongFieldTypeIsInvalid(t *testing.T) {
	b, err := Parse([]byte(`{"children": [{"type": "STICKY", "text": 12}, {"type": "STICKY", "text": "ok"}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, b.Children, 2)

	invalid, ok := b.Children[0].(*types.InvalidNode)
	require.True(t, ok)
	assert.Equal(t, types.KindSticky, invalid.NodeType)

	out := readme.NewConverter(nil).ConvertBoard(b)
	assert.Equal(t, "# \n\n- [Error processing STICKY]\n- ok\n", out)
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{path: "a.json", want: FormatJSON},
		{path: "a.JSON", want: FormatJSON},
		{path: "dir/a.yaml", want: FormatYAML},
		{path: "a.yml", want: FormatYAML},
		{path: "a.md", err: true},
		{path: "noext", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.err {
				var fe *FormatError
				assert.ErrorAs(t, err, &fe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
