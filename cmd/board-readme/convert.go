// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/board-readme/internal/board"
	"github.com/pdiddy/board-readme/internal/convert"
	"github.com/pdiddy/board-readme/internal/history"
	"github.com/pdiddy/board-readme/internal/readme"
	"github.com/pdiddy/board-readme/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [boards...]",
	Short: "Convert board exports (JSON or YAML) to README Markdown",
	Long: `Convert reads one or more board export files and writes one README per
board into the output directory. Existing READMEs are skipped unless --force
is given. Nodes that cannot be rendered are replaced by an inline
"[Error processing KIND]" item; unknown node types are left out.

Use --format html to write a standalone HTML page instead, and --stdout to
print the result without writing files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	if !cfg.Format.Valid() {
		return fmt.Errorf("unknown format %q: want markdown or html", cfg.Format)
	}
	if cfg.Title != "" && len(args) > 1 {
		return fmt.Errorf("--title can only be used with a single board")
	}

	p := &convert.Pipeline{
		Config:   cfg,
		Out:      cmd.OutOrStdout(),
		Observer: readme.NewLogObserver(cmd.ErrOrStderr(), viper.GetBool("verbose")),
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		return printBoards(p, args, cmd.OutOrStdout())
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if viper.GetBool("history.enabled") && !noHistory {
		store, err := history.NewStore(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()
		p.Recorder = historyRecorder{store: store}
	}

	result := p.ConvertBatch(context.Background(), args)
	if result.HasFailures() {
		return fmt.Errorf("%d board(s) failed conversion", result.Failed)
	}
	return nil
}

// printBoards writes each converted board to w instead of to files.
func printBoards(p *convert.Pipeline, paths []string, w io.Writer) error {
	for i, path := range paths {
		b, err := board.Load(path)
		if err != nil {
			return err
		}
		doc, err := p.Build(b, path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := w.Write(doc.Content); err != nil {
			return err
		}
	}
	return nil
}

// historyRecorder stores successful conversions in the history database.
type historyRecorder struct {
	store *history.Store
}

func (r historyRecorder) Record(ctx context.Context, res convert.Result) error {
	_, err := r.store.Record(ctx, history.Entry{
		Board:    res.Board,
		Source:   res.Source,
		Output:   res.OutputPath,
		Nodes:    res.Nodes,
		Errors:   res.Stats.Errors,
		Bytes:    res.Bytes,
		Markdown: res.Markdown,
	})
	return err
}

func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	title, _ := cmd.Flags().GetString("title")
	return types.ConvertConfig{
		OutputDir:   viper.GetString("convert.output_dir"),
		Format:      types.OutputFormat(viper.GetString("convert.format")),
		Title:       title,
		Frontmatter: viper.GetBool("convert.frontmatter"),
		Force:       viper.GetBool("convert.force"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func init() {
	convertCmd.Flags().String("output-dir", "readme", "directory generated READMEs are written to")
	convertCmd.Flags().String("format", string(types.OutputMarkdown), "output format: markdown or html")
	convertCmd.Flags().String("title", "", "document title (defaults to the board name; single board only)")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter to Markdown output")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")
	convertCmd.Flags().Bool("stdout", false, "print the result to stdout instead of writing files")
	convertCmd.Flags().Bool("no-history", false, "do not record conversions in the history database")

	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("convert.format", convertCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("convert.frontmatter", convertCmd.Flags().Lookup("frontmatter"))
	_ = viper.BindPFlag("convert.force", convertCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(convertCmd)
}
