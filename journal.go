package embedctl

import (
	"context"
	"strconv"
	"time"
)

// Journal retrieves log entries for one service from journald
type Journal struct {
	// Service is the unit name logs are retrieved for
	Service string

	// Lines is how many recent entries to retrieve
	Lines int

	// JournalctlPath is the path to the journalctl binary
	JournalctlPath string

	// Timeout bounds each journalctl invocation
	Timeout time.Duration

	// Runner executes the external command
	Runner Runner
}

// JournalOption configures a Journal
type JournalOption func(*Journal)

// WithLines sets how many entries Tail retrieves
func WithLines(n int) JournalOption {
	return func(j *Journal) {
		if n > 0 {
			j.Lines = n
		}
	}
}

// WithJournalctlPath sets the path to the journalctl binary
func WithJournalctlPath(path string) JournalOption {
	return func(j *Journal) {
		j.JournalctlPath = path
	}
}

// WithJournalRunner sets the process runner used for the journalctl call
func WithJournalRunner(r Runner) JournalOption {
	return func(j *Journal) {
		j.Runner = r
	}
}

// NewJournal creates a Journal for the named service
func NewJournal(service string, opts ...JournalOption) *Journal {
	j := &Journal{
		Service:        service,
		Lines:          DefaultLogLines,
		JournalctlPath: DefaultJournalctlPath,
		Timeout:        DefaultTimeout,
		Runner:         ExecRunner{},
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// Tail returns the last Lines journal entries for the service, non-paginated
func (j *Journal) Tail(ctx context.Context) (string, error) {
	if j.Service == "" {
		return "", ErrNoService
	}

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	res, err := j.Runner.Run(ctx, j.JournalctlPath,
		"-u", j.Service, "-n", strconv.Itoa(j.Lines), "--no-pager")
	if err != nil {
		return res.Stdout, &OpError{Op: OpLogs, Target: j.Service, Err: err}
	}
	if res.Code != 0 {
		return res.Stdout, &OpError{Op: OpLogs, Target: j.Service, Err: &ExitError{Code: res.Code, Stderr: res.Stderr}}
	}
	return res.Stdout, nil
}
