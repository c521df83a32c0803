// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/board-readme/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and show previously converted boards",
	Long: `History reads the local conversion log. Every board converted without
--no-history is recorded with its node and error counts and the generated
Markdown.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-5s  %-30s  %-16s  %6s  %6s  %s\n", "ID", "Board", "Converted", "Nodes", "Errors", "Size")
	fmt.Fprintln(out, strings.Repeat("-", 84))
	for _, e := range entries {
		name := truncate(e.Board, 30)
		fmt.Fprintf(out, "%-5d  %-30s  %-16s  %6d  %6d  %s\n",
			e.ID, name, humanize.Time(e.ConvertedAt), e.Nodes, e.Errors, humanize.Bytes(uint64(e.Bytes)))
	}
	fmt.Fprintf(out, "\n%d entries\n", len(entries))
	return nil
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the README recorded for a conversion",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q: %w", args[0], err)
	}

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), e.Markdown)
	return nil
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum number of entries (default from history.max_results)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
