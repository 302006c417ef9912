package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) logsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show the most recent journal entries for the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.Out, info(fmt.Sprintf("📜 Last %d log entries for %s:", a.Config.LogLines, a.Config.Service)))
			out, err := a.Journal.Tail(cmd.Context())
			fmt.Fprint(a.Out, out)
			return err
		},
	}
}
