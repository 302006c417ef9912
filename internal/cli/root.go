// Package cli implements the embedctl command dispatcher: one subcommand per
// operator action, each wired to the capabilities in the root package.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axondata/embedctl"
)

// errUsage marks the "no command given" path; help has already been printed
// when it is returned.
var errUsage = errors.New("usage")

// runErr marks runtime failures that should not trigger usage output
type runErr struct{ err error }

func (e *runErr) Error() string { return e.err.Error() }
func (e *runErr) Unwrap() error { return e.err }

// Supervisor is the service-control capability the dispatcher needs
type Supervisor interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Status(ctx context.Context) (string, error)
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
}

// Journal is the log-retrieval capability
type Journal interface {
	Tail(ctx context.Context) (string, error)
}

// Health is the HTTP health capability
type Health interface {
	Probe(ctx context.Context) error
	Fetch(ctx context.Context) ([]byte, error)
	FetchMemory(ctx context.Context) ([]byte, error)
}

// UnitInstaller is the unit-file installation capability
type UnitInstaller interface {
	Install(ctx context.Context, cfg embedctl.UnitConfig) error
}

// StateWatcher is the state-following capability
type StateWatcher interface {
	Watch(ctx context.Context) (<-chan embedctl.WatchEvent, embedctl.WatchCleanupFunc, error)
}

// App holds the dispatcher's collaborators. Zero fields are filled in from
// Config when the command runs, so tests can preset fakes and production
// gets the real implementations.
type App struct {
	Config embedctl.Config

	Supervisor Supervisor
	Journal    Journal
	Health     Health
	Installer  UnitInstaller
	Watcher    StateWatcher

	Out    io.Writer
	ErrOut io.Writer
	Sleep  func(time.Duration)

	flagService   string
	flagHealthURL string
	flagConfig    string
	flagVerbose   bool
}

// Execute runs the dispatcher with production wiring and returns the process
// exit code.
func Execute(ctx context.Context, args []string) int {
	app := &App{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		Sleep:  time.Sleep,
	}
	return app.Run(ctx, args)
}

// Run dispatches args and returns the exit code
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.ErrOut == nil {
		a.ErrOut = os.Stderr
	}
	if a.Sleep == nil {
		a.Sleep = time.Sleep
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Deliberate exit-code forwarding: a subprocess failed, surface its
	// stderr and adopt its code.
	var xe *embedctl.ExitError
	if errors.As(err, &xe) {
		if xe.Stderr != "" {
			fmt.Fprint(a.ErrOut, xe.Stderr)
		}
		if xe.Code != 0 {
			return xe.Code
		}
		return 1
	}

	if errors.Is(err, errUsage) {
		return 1
	}

	var re *runErr
	var oe *embedctl.OpError
	if errors.As(err, &re) || errors.As(err, &oe) {
		fmt.Fprintf(a.ErrOut, "Error: %v\n", err)
		return 1
	}

	// Unknown command or bad flags: show the full usage text
	fmt.Fprintf(a.ErrOut, "Error: %v\n\n", err)
	_ = root.Help()
	return 1
}

func (a *App) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "embedctl <command>",
		Short:         "Manage the embedding service",
		Long:          "embedctl controls a systemd-supervised embedding HTTP service:\nstart/stop lifecycle, boot enablement, journal tailing, and health checks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	cmd.PersistentFlags().StringVar(&a.flagService, "service", "", "Service unit name (default from config)")
	cmd.PersistentFlags().StringVar(&a.flagHealthURL, "health-url", "", "Health endpoint URL (default from config)")
	cmd.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Path to YAML config file (optional)")
	cmd.PersistentFlags().BoolVarP(&a.flagVerbose, "verbose", "v", false, "Log external invocations")

	cmd.AddCommand(
		a.startCmd(),
		a.stopCmd(),
		a.restartCmd(),
		a.statusCmd(),
		a.logsCmd(),
		a.healthCmd(),
		a.memoryCmd(),
		a.enableCmd(),
		a.disableCmd(),
		a.installCmd(),
		a.watchCmd(),
		a.versionCmd(),
	)

	return cmd
}

// setup fills in config and any collaborator not preset by the caller
func (a *App) setup() error {
	if a.Config == (embedctl.Config{}) {
		cfg, err := embedctl.LoadConfig(a.flagConfig)
		if err != nil {
			return &runErr{err}
		}
		a.Config = cfg
	}
	if a.flagService != "" {
		a.Config.Service = a.flagService
	}
	if a.flagHealthURL != "" {
		a.Config.HealthURL = a.flagHealthURL
	}

	if a.Supervisor == nil {
		a.Supervisor = embedctl.NewSupervisor(a.Config.Service)
	}
	if a.Journal == nil {
		a.Journal = embedctl.NewJournal(a.Config.Service, embedctl.WithLines(a.Config.LogLines))
	}
	if a.Health == nil {
		a.Health = embedctl.NewHealthClient(a.Config.HealthURL)
	}
	if a.Installer == nil {
		a.Installer = embedctl.NewInstaller(embedctl.NewSupervisor(a.Config.Service))
	}
	if a.Watcher == nil {
		a.Watcher = embedctl.NewWatcher(embedctl.NewSupervisor(a.Config.Service))
	}
	return nil
}
