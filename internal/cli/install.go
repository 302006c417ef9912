package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axondata/embedctl"
)

func (a *App) installCmd() *cobra.Command {
	var (
		execStart  string
		user       string
		group      string
		workingDir string
		envPairs   []string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Generate and install the service's systemd unit file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := make(map[string]string, len(envPairs))
			for _, pair := range envPairs {
				k, v, found := strings.Cut(pair, "=")
				if !found || k == "" {
					return &runErr{fmt.Errorf("invalid --env value %q, want KEY=VALUE", pair)}
				}
				env[k] = v
			}

			unit := embedctl.UnitConfig{
				Service:    a.Config.Service,
				ExecStart:  strings.Fields(execStart),
				User:       user,
				Group:      group,
				WorkingDir: workingDir,
				Env:        env,
			}

			if dryRun {
				content, err := unit.BuildUnit()
				if err != nil {
					return &runErr{err}
				}
				fmt.Fprint(a.Out, content)
				return nil
			}

			fmt.Fprintln(a.Out, info(fmt.Sprintf("📦 Installing unit for %s...", a.Config.Service)))
			if err := a.Installer.Install(cmd.Context(), unit); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, ok("✅ Unit installed and daemon reloaded"))
			return nil
		},
	}

	cmd.Flags().StringVar(&execStart, "exec", "", "Command line that runs the service (required)")
	cmd.Flags().StringVar(&user, "user", "", "User the service runs as")
	cmd.Flags().StringVar(&group, "group", "", "Group the service runs as")
	cmd.Flags().StringVar(&workingDir, "working-dir", "", "Working directory for the service")
	cmd.Flags().StringArrayVar(&envPairs, "env", nil, "Environment variable KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the unit file instead of installing it")

	_ = cmd.MarkFlagRequired("exec")
	return cmd
}
