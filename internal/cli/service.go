package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the service and report its status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fmt.Fprintln(a.Out, info(fmt.Sprintf("🔄 Starting %s...", a.Config.Service)))
			if err := a.Supervisor.Start(ctx); err != nil {
				return err
			}

			// Give the service a moment to come up before reporting
			a.Sleep(a.Config.SettleDelay)

			out, err := a.Supervisor.Status(ctx)
			fmt.Fprint(a.Out, out)
			return err
		},
	}
}

func (a *App) stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.Out, info(fmt.Sprintf("🛑 Stopping %s...", a.Config.Service)))
			if err := a.Supervisor.Stop(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, ok("✅ Service stopped"))
			return nil
		},
	}
}

func (a *App) restartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the service and report its status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fmt.Fprintln(a.Out, info(fmt.Sprintf("🔄 Restarting %s...", a.Config.Service)))
			if err := a.Supervisor.Restart(ctx); err != nil {
				return err
			}

			a.Sleep(a.Config.SettleDelay)

			out, err := a.Supervisor.Status(ctx)
			fmt.Fprint(a.Out, out)
			return err
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the supervisor's status report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.Supervisor.Status(cmd.Context())
			fmt.Fprint(a.Out, out)
			return err
		},
	}
}

func (a *App) enableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Enable the service at boot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.Out, info(fmt.Sprintf("⚙️  Enabling %s at boot...", a.Config.Service)))
			if err := a.Supervisor.Enable(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, ok("✅ Service enabled at boot"))
			return nil
		},
	}
}

func (a *App) disableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Disable the service at boot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.Out, info(fmt.Sprintf("⚙️  Disabling %s at boot...", a.Config.Service)))
			if err := a.Supervisor.Disable(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, ok("✅ Service disabled at boot"))
			return nil
		},
	}
}
