// Package main provides the kwgroup CLI for offline grouping, record import
// and schema migrations.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kwtaxonomy/internal/config"
	"kwtaxonomy/internal/logging"
)

// cli holds state shared by all subcommands.
type cli struct {
	lexiconFile string
	logLevel    string
	cfg         *config.Config
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:   "kwgroup",
		Short: "Group search keywords into a brand/size/intent taxonomy",
		Long: `kwgroup groups harvested search keywords into a two-level taxonomy
(Brands, Sizes, Price, Comparison, Question, Other).

Records are JSON objects with at least a "keyword" field, optionally
"search_volume" and "cpc". Files may hold a bare array or {"records": [...]}.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.cfg = config.Load()
			if app.lexiconFile == "" {
				app.lexiconFile = app.cfg.LexiconFile
			}
			level := app.logLevel
			if level == "" {
				level = app.cfg.LogLevel
			}
			logging.SetupWithWriter(cmd.ErrOrStderr(), level, "console", "kwgroup")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.lexiconFile, "lexicons", "", "lexicon YAML file (default: $LEXICON_FILE or lexicons.yaml)")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (default: $LOG_LEVEL or info)")

	root.AddCommand(newGroupCmd(app))
	root.AddCommand(newImportCmd(app))
	root.AddCommand(newMigrateCmd(app))

	return root
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
