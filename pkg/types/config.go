// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects the file format written by the convert command.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
)

// Extension returns the file extension, dot included, for the format.
func (f OutputFormat) Extension() string {
	if f == OutputHTML {
		return ".html"
	}
	return ".md"
}

// Valid reports whether f is a supported output format.
func (f OutputFormat) Valid() bool {
	return f == OutputMarkdown || f == OutputHTML
}

// ConvertConfig holds settings for converting board files.
type ConvertConfig struct {
	// OutputDir is the directory generated files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects the output format: markdown or html.
	Format OutputFormat `json:"format" yaml:"format"`

	// Title overrides the board name as the document title when non-empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Frontmatter prepends YAML frontmatter (board, source, converted_at)
	// to Markdown output.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`

	// Force overwrites existing output instead of skipping the board.
	Force bool `json:"force" yaml:"force"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Dir is the directory containing history.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
