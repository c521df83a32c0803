// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the board-readme CLI, which turns
// whiteboard exports into README-style Markdown outlines.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the board-readme CLI.
var rootCmd = &cobra.Command{
	Use:   "board-readme",
	Short: "Convert whiteboard exports into README Markdown",
	Long: `board-readme converts exported whiteboards (sections, sticky notes,
shapes, link previews, groups and frames) into a Markdown outline that
mirrors the board's structure.

Sections become headings, notes become list items, and link previews become
links. Converted boards are logged to a local history database so earlier
READMEs can be listed and shown again.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./board-readme.yaml or ~/.config/board-readme/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every processed node to stderr")
	rootCmd.PersistentFlags().String("history-dir", defaultHistoryDir(), "directory containing the history database")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("board-readme")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "board-readme"))
		}
	}

	viper.SetEnvPrefix("BOARD_README")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryDir returns ~/.local/share/board-readme, or a relative
// .board-readme directory when the home directory is unknown.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".board-readme"
	}
	return filepath.Join(home, ".local", "share", "board-readme")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
