package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the service's state transitions until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			events, cleanup, err := a.Watcher.Watch(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			fmt.Fprintln(a.Out, info(fmt.Sprintf("👀 Watching %s (interrupt to stop)...", a.Config.Service)))

			for ev := range events {
				stamp := ev.At.Format(time.TimeOnly)
				switch {
				case ev.Err != nil:
					fmt.Fprintln(a.Out, fail(fmt.Sprintf("%s ❌ %v", stamp, ev.Err)))
				case ev.ReloadNeeded:
					fmt.Fprintln(a.Out, warn(fmt.Sprintf("%s ⚠️  unit file changed on disk, daemon-reload needed", stamp)))
				default:
					fmt.Fprintln(a.Out, info(fmt.Sprintf("%s 🔁 %s → %s", stamp, ev.Prev, ev.State)))
				}
			}
			return nil
		},
	}
}
