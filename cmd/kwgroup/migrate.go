package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"kwtaxonomy/internal/db"
)

func newMigrateCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.RunMigrations(app.cfg.DatabaseURL); err != nil {
				return err
			}
			log.Info().Msg("migrations completed successfully")
			return nil
		},
	}
}
