// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/board-readme/internal/board"
	"github.com/pdiddy/board-readme/internal/readme"
	"github.com/pdiddy/board-readme/internal/render"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <board>",
	Short: "Print the heading outline of a board's README",
	Long: `Outline converts a board and prints the headings of the resulting
README as an indented tree, followed by a count of nodes per type.
Headings nested deeper than level six are not Markdown headings and are
not listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	b, err := board.Load(args[0])
	if err != nil {
		return err
	}

	var stats readme.Stats
	obs := readme.MultiObserver{&stats, readme.NewLogObserver(cmd.ErrOrStderr(), viper.GetBool("verbose"))}
	md := readme.NewConverter(obs).ConvertBoard(b)
	headings := render.Outline(md)

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(headings)
	}

	fmt.Fprint(out, render.FormatOutline(headings))
	fmt.Fprintln(out)
	for _, kind := range stats.Kinds() {
		fmt.Fprintf(out, "%-16s %d\n", kind, stats.ByKind[kind])
	}
	fmt.Fprintf(out, "\n%d nodes, %d ignored, %d errors\n", stats.Nodes, stats.Ignored, stats.Errors)
	return nil
}

func init() {
	outlineCmd.Flags().Bool("json", false, "output headings as JSON")

	rootCmd.AddCommand(outlineCmd)
}
