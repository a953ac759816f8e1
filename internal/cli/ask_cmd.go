package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the AI assistant a one-shot question about the program",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.loadData()
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			reply := app.Agent.Ask(context.Background(), question, nil, &data)
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
