// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs board files through the README converter and writes
// the generated documents to disk.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/board-readme/internal/board"
	"github.com/pdiddy/board-readme/internal/readme"
	"github.com/pdiddy/board-readme/internal/render"
	"github.com/pdiddy/board-readme/pkg/types"
)

// Status is the outcome of converting one board file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result describes one board conversion.
type Result struct {
	Status     Status
	Board      string
	Source     string
	OutputPath string
	// Markdown is the generated README body, before frontmatter or HTML
	// rendering.
	Markdown string
	// Bytes is the size of the written file.
	Bytes int
	Nodes int
	Stats readme.Stats
	Err   error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Bytes     int64
}

// Total returns the total number of boards processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any board failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Recorder receives every successful conversion.
type Recorder interface {
	Record(ctx context.Context, res Result) error
}

// Pipeline converts board files according to Config. Out receives one status
// line per board; Observer, when set, also receives converter events.
type Pipeline struct {
	Config   types.ConvertConfig
	Out      io.Writer
	Observer readme.Observer
	Recorder Recorder
	Now      func() time.Time
}

// Document is a converted board ready to be written.
type Document struct {
	Title    string
	Markdown string
	// Content is the bytes to write: Markdown with optional frontmatter, or
	// a rendered HTML page.
	Content []byte
	Nodes   int
	Stats   readme.Stats
}

// Build converts b into a Document. source is the path the board was loaded
// from and is recorded in frontmatter.
func (p *Pipeline) Build(b *types.Board, source string) (*Document, error) {
	title := b.Name
	if p.Config.Title != "" {
		title = p.Config.Title
	}

	doc := &Document{Title: title, Nodes: types.CountNodes(b.Children)}
	obs := readme.Observer(&doc.Stats)
	if p.Observer != nil {
		obs = readme.MultiObserver{&doc.Stats, p.Observer}
	}
	doc.Markdown = readme.NewConverter(obs).Convert(title, b.Children)

	switch p.Config.Format {
	case types.OutputHTML:
		page, err := render.HTML(doc.Markdown, title)
		if err != nil {
			return nil, err
		}
		doc.Content = page
	default:
		content := doc.Markdown
		if p.Config.Frontmatter {
			fm, err := frontmatter(title, source, p.now())
			if err != nil {
				return nil, err
			}
			content = fm + content
		}
		doc.Content = []byte(content)
	}
	return doc, nil
}

// OutputPath returns where the document for the board at boardPath is
// written.
func (p *Pipeline) OutputPath(boardPath string) string {
	base := strings.TrimSuffix(filepath.Base(boardPath), filepath.Ext(boardPath))
	return filepath.Join(p.Config.OutputDir, Slug(base)+p.Config.Format.Extension())
}

// ConvertFile converts a single board file and writes the result. If the
// output already exists and Force is not set, the board is skipped.
func (p *Pipeline) ConvertFile(ctx context.Context, boardPath string) Result {
	outPath := p.OutputPath(boardPath)
	res := Result{Source: boardPath, OutputPath: outPath}
	name := filepath.Base(boardPath)

	fail := func(err error) Result {
		fmt.Fprintf(p.Out, "failed:    %s (%v)\n", name, err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if !p.Config.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(p.Out, "skipped:   %s (%s already exists)\n", name, outPath)
			res.Status = StatusSkipped
			return res
		}
	}

	b, err := board.Load(boardPath)
	if err != nil {
		return fail(err)
	}
	res.Board = b.Name

	doc, err := p.Build(b, boardPath)
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fail(fmt.Errorf("creating output directory: %w", err))
	}
	if err := os.WriteFile(outPath, doc.Content, 0o644); err != nil {
		return fail(fmt.Errorf("writing output: %w", err))
	}

	res.Status = StatusConverted
	res.Markdown = doc.Markdown
	res.Bytes = len(doc.Content)
	res.Nodes = doc.Nodes
	res.Stats = doc.Stats

	fmt.Fprintf(p.Out, "converted: %s -> %s (%d nodes, %d errors)\n", name, outPath, doc.Nodes, doc.Stats.Errors)

	if p.Recorder != nil {
		if err := p.Recorder.Record(ctx, res); err != nil {
			fmt.Fprintf(p.Out, "warning: could not record %s in history: %v\n", name, err)
		}
	}
	return res
}

// ConvertBatch converts each board file in order, printing per-file status
// and a closing summary.
func (p *Pipeline) ConvertBatch(ctx context.Context, paths []string) BatchResult {
	var result BatchResult
	for _, path := range paths {
		res := p.ConvertFile(ctx, path)
		switch res.Status {
		case StatusConverted:
			result.Converted++
			result.Bytes += int64(res.Bytes)
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(p.Out, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d, %s written)\n",
		result.Converted, result.Skipped, result.Failed, result.Total(), humanize.Bytes(uint64(result.Bytes)))
	return result
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Slug lowercases name and collapses every run of characters other than
// letters and digits into a single hyphen. An empty result becomes "board".
func Slug(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "board"
	}
	return b.String()
}

type frontmatterFields struct {
	Board       string `yaml:"board"`
	Source      string `yaml:"source,omitempty"`
	ConvertedAt string `yaml:"converted_at"`
}

// frontmatter returns a YAML frontmatter block ending in a blank line.
func frontmatter(title, source string, at time.Time) (string, error) {
	data, err := yaml.Marshal(frontmatterFields{
		Board:       title,
		Source:      source,
		ConvertedAt: at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}
