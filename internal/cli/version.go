package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/embedctl"
)

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := embedctl.GetVersion()
			fmt.Fprintf(a.Out, "embedctl %s (service API %s)\n", v.Version, v.ServiceAPI)
		},
	}
}
