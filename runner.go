package embedctl

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Result holds the outcome of one external invocation
type Result struct {
	// Stdout is the captured standard output
	Stdout string
	// Stderr is the captured standard error
	Stderr string
	// Code is the process exit code (0 on success)
	Code int
}

// Runner executes external commands. Implementations capture output rather
// than inheriting the caller's streams so the dispatcher controls what is
// printed and which exit code is forwarded.
type Runner interface {
	// Run executes name with args and waits for completion
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// RunInput is Run with input supplied on the process's standard input
	RunInput(ctx context.Context, input []byte, name string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec
type ExecRunner struct{}

// Run executes the command and captures its output
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return ExecRunner{}.RunInput(ctx, nil, name, args...)
}

// RunInput executes the command with the given standard input
func (ExecRunner) RunInput(ctx context.Context, input []byte, name string, args ...string) (Result, error) {
	logrus.Debugf("exec: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			res.Code = ee.ExitCode()
			// Exit codes are expected outcomes; the code itself is the signal
			return res, nil
		}
		if ctx.Err() == context.DeadlineExceeded {
			res.Code = 124
			return res, ctx.Err()
		}
		res.Code = 1
		return res, err
	}

	return res, nil
}
