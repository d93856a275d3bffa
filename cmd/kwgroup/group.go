package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"kwtaxonomy/internal/config"
	"kwtaxonomy/internal/keywords"
)

func newGroupCmd(app *cli) *cobra.Command {
	var (
		file        string
		summaryOnly bool
		compact     bool
	)

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group keyword records from a JSON file and print the result",
		Example: `  kwgroup group --file records.json
  cat records.json | kwgroup group --file - --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lexicons, err := config.LoadLexicons(app.lexiconFile)
			if err != nil {
				return fmt.Errorf("load lexicons: %w", err)
			}

			records, err := readRecords(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			result, err := keywords.NewPipeline(lexicons).Run(records)
			if err != nil {
				return err
			}

			log.Debug().
				Int("input", result.InputCount).
				Int("unique", result.UniqueCount).
				Int("groups", len(result.Groups)).
				Msg("grouped keywords")

			var out any = result
			if summaryOnly {
				out = result.Summary
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON records file, - for stdin (required)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the summary view")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
