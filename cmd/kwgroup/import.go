package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"kwtaxonomy/internal/db"
	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/validation"
)

func newImportCmd(app *cli) *cobra.Command {
	var (
		projectID string
		name      string
		file      string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import keyword records into a stored project",
		Long: `Import validates the records and stores them for a project. Either --project
(an existing project ID) or --name (creates a new project) is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (projectID == "") == (name == "") {
				return fmt.Errorf("exactly one of --project or --name is required")
			}

			records, err := readRecords(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := keywords.Validate(records); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			database, err := db.New(ctx, app.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			var id uuid.UUID
			if name != "" {
				if valid, msg := validation.ValidateProjectName(name); !valid {
					return fmt.Errorf("%s", msg)
				}
				project, err := database.CreateProject(ctx, name)
				if err != nil {
					return fmt.Errorf("create project: %w", err)
				}
				id = project.ID
			} else if id, err = uuid.Parse(projectID); err != nil {
				return fmt.Errorf("invalid project id: %w", err)
			}

			inserted, err := database.InsertKeywordRecords(ctx, id, records)
			if err != nil {
				return fmt.Errorf("import records: %w", err)
			}

			log.Info().Str("project", id.String()).Int("inserted", inserted).Msg("import complete")
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "existing project ID")
	cmd.Flags().StringVar(&name, "name", "", "create a new project with this name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON records file, - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
