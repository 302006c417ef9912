package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axondata/embedctl"
)

func (a *App) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the service's HTTP health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Best-effort reporting: a failed probe is surfaced to the
			// operator but never becomes this process's exit status.
			if err := a.Health.Probe(ctx); err != nil {
				logrus.Debugf("health probe: %v", err)
				fmt.Fprintln(a.Out, fail("❌ Service is not responding"))
				return nil
			}

			fmt.Fprintln(a.Out, ok("✅ Service is healthy"))

			body, err := a.Health.Fetch(ctx)
			if err != nil {
				logrus.Debugf("health fetch: %v", err)
				return nil
			}
			a.printJSON(body)
			return nil
		},
	}
}

func (a *App) memoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "Show the service's memory usage report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := a.Health.FetchMemory(cmd.Context())
			if err != nil {
				logrus.Debugf("memory fetch: %v", err)
				fmt.Fprintln(a.Out, fail("❌ Service is not responding"))
				return nil
			}
			fmt.Fprintln(a.Out, info("🧠 Memory usage:"))
			a.printJSON(body)
			return nil
		},
	}
}

// printJSON pretty-prints a JSON body, falling back to the raw text when it
// does not indent cleanly
func (a *App) printJSON(body []byte) {
	pretty, err := embedctl.PrettyJSON(body)
	if err != nil {
		fmt.Fprintln(a.Out, string(body))
		return
	}
	fmt.Fprintln(a.Out, pretty)
}
