package embedctl

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Supervisor provides control operations for one systemd service.
// Commands are built the way an operator would type them (optional sudo
// prefix, unit name last) and executed through the injected Runner.
type Supervisor struct {
	// Service is the unit name (without .service suffix)
	Service string

	// UseSudo indicates whether to prefix systemctl commands with sudo
	UseSudo bool

	// SudoCommand is the privilege-escalation command (default: "sudo")
	SudoCommand string

	// SystemctlPath is the path to the systemctl binary
	SystemctlPath string

	// Timeout bounds each systemctl invocation
	Timeout time.Duration

	// Runner executes the external commands
	Runner Runner
}

// SupervisorOption configures a Supervisor
type SupervisorOption func(*Supervisor)

// WithSudo configures sudo usage
func WithSudo(use bool, command string) SupervisorOption {
	return func(s *Supervisor) {
		s.UseSudo = use
		if command != "" {
			s.SudoCommand = command
		}
	}
}

// WithTimeout sets the per-invocation timeout
func WithTimeout(d time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.Timeout = d
	}
}

// WithSystemctlPath sets the path to the systemctl binary
func WithSystemctlPath(path string) SupervisorOption {
	return func(s *Supervisor) {
		s.SystemctlPath = path
	}
}

// WithRunner sets the process runner used for external commands
func WithRunner(r Runner) SupervisorOption {
	return func(s *Supervisor) {
		s.Runner = r
	}
}

// NewSupervisor creates a Supervisor for the named service
func NewSupervisor(service string, opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		Service:       service,
		UseSudo:       os.Geteuid() != 0,
		SudoCommand:   DefaultSudoCommand,
		SystemctlPath: DefaultSystemctlPath,
		Timeout:       DefaultTimeout,
		Runner:        ExecRunner{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// unit returns the fully qualified unit name
func (s *Supervisor) unit() string {
	return fmt.Sprintf("%s.service", s.Service)
}

// systemctl runs a systemctl verb against the service and captures the result
func (s *Supervisor) systemctl(ctx context.Context, args ...string) (Result, error) {
	if s.Service == "" {
		return Result{}, ErrNoService
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	full := append(args, s.unit())
	if s.UseSudo {
		sudoArgs := append([]string{s.SystemctlPath}, full...)
		return s.Runner.Run(ctx, s.SudoCommand, sudoArgs...)
	}
	return s.Runner.Run(ctx, s.SystemctlPath, full...)
}

// control runs a systemctl verb and converts a non-zero exit into an OpError
func (s *Supervisor) control(ctx context.Context, op Operation, verb string) error {
	res, err := s.systemctl(ctx, verb)
	if err != nil {
		return &OpError{Op: op, Target: s.Service, Err: err}
	}
	if res.Code != 0 {
		return &OpError{Op: op, Target: s.Service, Err: &ExitError{Code: res.Code, Stderr: res.Stderr}}
	}
	return nil
}

// Start starts the service
func (s *Supervisor) Start(ctx context.Context) error {
	return s.control(ctx, OpStart, "start")
}

// Stop stops the service
func (s *Supervisor) Stop(ctx context.Context) error {
	return s.control(ctx, OpStop, "stop")
}

// Restart restarts the service
func (s *Supervisor) Restart(ctx context.Context) error {
	return s.control(ctx, OpRestart, "restart")
}

// Enable enables the service to start on boot
func (s *Supervisor) Enable(ctx context.Context) error {
	return s.control(ctx, OpEnable, "enable")
}

// Disable disables the service from starting on boot
func (s *Supervisor) Disable(ctx context.Context) error {
	return s.control(ctx, OpDisable, "disable")
}

// Status returns the supervisor's own status report, unmodified, for
// passthrough display. The report text is returned even when systemctl exits
// non-zero (it uses exit code 3 for stopped units); the error carries that
// code so the caller can forward it.
func (s *Supervisor) Status(ctx context.Context) (string, error) {
	res, err := s.systemctl(ctx, "status", "--no-pager")
	if err != nil {
		return res.Stdout, &OpError{Op: OpStatus, Target: s.Service, Err: err}
	}
	if res.Code != 0 {
		return res.Stdout, &OpError{Op: OpStatus, Target: s.Service, Err: &ExitError{Code: res.Code, Stderr: res.Stderr}}
	}
	return res.Stdout, nil
}

// IsRunning checks if the service is currently active.
// systemctl is-active exits 3 when the unit is inactive; that is a status,
// not an error.
func (s *Supervisor) IsRunning(ctx context.Context) (bool, error) {
	res, err := s.systemctl(ctx, "is-active")
	if err != nil {
		return false, &OpError{Op: OpStatus, Target: s.Service, Err: err}
	}
	return ParseState(res.Stdout) == StateActive, nil
}

// ActiveState reports the service's current active-state
func (s *Supervisor) ActiveState(ctx context.Context) (State, error) {
	res, err := s.systemctl(ctx, "is-active")
	if err != nil {
		return StateUnknown, &OpError{Op: OpStatus, Target: s.Service, Err: err}
	}
	return ParseState(res.Stdout), nil
}

// DaemonReload asks systemd to reload its unit definitions.
// Unlike the other verbs this one takes no unit name.
func (s *Supervisor) DaemonReload(ctx context.Context) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var res Result
	var err error
	if s.UseSudo {
		res, err = s.Runner.Run(ctx, s.SudoCommand, s.SystemctlPath, "daemon-reload")
	} else {
		res, err = s.Runner.Run(ctx, s.SystemctlPath, "daemon-reload")
	}
	if err != nil {
		return &OpError{Op: OpInstall, Target: s.Service, Err: err}
	}
	if res.Code != 0 {
		return &OpError{Op: OpInstall, Target: s.Service, Err: &ExitError{Code: res.Code, Stderr: res.Stderr}}
	}
	return nil
}
