package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/progdeck/progdeck/internal/summary"
)

func newSummaryCmd(app *App) *cobra.Command {
	var projectCodes []string
	var planFlags []string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate a scoped status summary to stdout",
		Long: `Generate an AI status summary for the selected projects (all when no
--projects filter is given). Recovery-plan context for troubled projects can
be supplied inline with repeated --plan flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.loadData()
			if err != nil {
				return err
			}

			var selectedIDs []string
			for _, code := range projectCodes {
				p := data.ProjectByCode(strings.TrimSpace(code))
				if p == nil {
					return fmt.Errorf("unknown project code %q", code)
				}
				selectedIDs = append(selectedIDs, p.ID)
			}

			planContext := map[string]string{}
			for _, flag := range planFlags {
				code, plan, ok := strings.Cut(flag, "=")
				if !ok {
					return fmt.Errorf("invalid --plan %q, expected CODE=text", flag)
				}
				planContext[strings.TrimSpace(code)] = plan
			}

			markdown := app.Summaries.Summarize(context.Background(), &data, selectedIDs, planContext)
			fmt.Fprintln(cmd.OutOrStdout(), summary.Stamp(markdown, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projectCodes, "projects", nil,
		"project codes to cover, e.g. P01,P02 (default all)")
	cmd.Flags().StringArrayVar(&planFlags, "plan", nil,
		"recovery plan for a project, CODE=text (repeatable)")

	return cmd
}
