package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/progdeck/progdeck/internal/config"
	"github.com/progdeck/progdeck/internal/snapshot"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.db>",
		Short: "Save the program to a SQLite snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.loadData()
			if err != nil {
				return err
			}

			db, err := snapshot.OpenDB(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			store := snapshot.NewProgramStore(db)
			if err := store.Save(context.Background(), data, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", data.ProgramName, args[0])
			return nil
		},
	}
}

func newLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.db>",
		Short: "Restore a program from a SQLite snapshot file",
		Long: `Read a snapshot and write the program back out as YAML: to the --file
path when one is set, otherwise to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := snapshot.OpenDB(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			store := snapshot.NewProgramStore(db)
			data, err := store.Load(context.Background())
			if err != nil {
				return err
			}

			out, err := config.Render(data)
			if err != nil {
				return err
			}

			if app.filePath != "" {
				if err := os.WriteFile(app.filePath, out, 0o644); err != nil {
					return fmt.Errorf("writing program file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %q to %s\n", data.ProgramName, app.filePath)
				return nil
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
