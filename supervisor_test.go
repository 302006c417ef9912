package embedctl

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordedCall captures one Runner invocation
type recordedCall struct {
	Name  string
	Args  []string
	Input []byte
}

// fakeRunner records invocations and replays queued results
type fakeRunner struct {
	Calls   []recordedCall
	Results []Result
	Errs    []error
}

func (f *fakeRunner) next() (Result, error) {
	var res Result
	var err error
	if len(f.Results) > 0 {
		res = f.Results[0]
		f.Results = f.Results[1:]
	}
	if len(f.Errs) > 0 {
		err = f.Errs[0]
		f.Errs = f.Errs[1:]
	}
	return res, err
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, recordedCall{Name: name, Args: args})
	return f.next()
}

func (f *fakeRunner) RunInput(_ context.Context, input []byte, name string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, recordedCall{Name: name, Args: args, Input: input})
	return f.next()
}

func newTestSupervisor(r Runner, opts ...SupervisorOption) *Supervisor {
	base := []SupervisorOption{
		WithRunner(r),
		WithSudo(false, ""),
		WithTimeout(time.Second),
	}
	return NewSupervisor("embedding-service", append(base, opts...)...)
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSupervisorCommandConstruction(t *testing.T) {
	tests := []struct {
		name     string
		sudo     bool
		invoke   func(*Supervisor, context.Context) error
		wantName string
		wantArgs []string
	}{
		{
			name:     "start without sudo",
			invoke:   (*Supervisor).Start,
			wantName: "systemctl",
			wantArgs: []string{"start", "embedding-service.service"},
		},
		{
			name:     "stop without sudo",
			invoke:   (*Supervisor).Stop,
			wantName: "systemctl",
			wantArgs: []string{"stop", "embedding-service.service"},
		},
		{
			name:     "restart without sudo",
			invoke:   (*Supervisor).Restart,
			wantName: "systemctl",
			wantArgs: []string{"restart", "embedding-service.service"},
		},
		{
			name:     "enable without sudo",
			invoke:   (*Supervisor).Enable,
			wantName: "systemctl",
			wantArgs: []string{"enable", "embedding-service.service"},
		},
		{
			name:     "disable without sudo",
			invoke:   (*Supervisor).Disable,
			wantName: "systemctl",
			wantArgs: []string{"disable", "embedding-service.service"},
		},
		{
			name:     "start with sudo",
			sudo:     true,
			invoke:   (*Supervisor).Start,
			wantName: "sudo",
			wantArgs: []string{"systemctl", "start", "embedding-service.service"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			sup := newTestSupervisor(runner)
			if tt.sudo {
				sup = newTestSupervisor(runner, WithSudo(true, "sudo"))
			}

			if err := tt.invoke(sup, context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(runner.Calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(runner.Calls))
			}
			call := runner.Calls[0]
			if call.Name != tt.wantName {
				t.Errorf("name = %q, want %q", call.Name, tt.wantName)
			}
			if !equalArgs(call.Args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", call.Args, tt.wantArgs)
			}
		})
	}
}

func TestSupervisorControlFailure(t *testing.T) {
	runner := &fakeRunner{Results: []Result{{Code: 5, Stderr: "Failed to start unit\n"}}}
	sup := newTestSupervisor(runner)

	err := sup.Start(context.Background())
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var xe *ExitError
	if !errors.As(err, &xe) {
		t.Fatalf("error %v does not wrap ExitError", err)
	}
	if xe.Code != 5 {
		t.Errorf("code = %d, want 5", xe.Code)
	}

	var oe *OpError
	if !errors.As(err, &oe) {
		t.Fatalf("error %v does not wrap OpError", err)
	}
	if oe.Op != OpStart {
		t.Errorf("op = %v, want %v", oe.Op, OpStart)
	}
}

func TestSupervisorStatusPassthrough(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		report := "● embedding-service.service - embedding-service service\n   Active: active (running)\n"
		runner := &fakeRunner{Results: []Result{{Stdout: report}}}
		sup := newTestSupervisor(runner)

		out, err := sup.Status(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != report {
			t.Errorf("output modified:\ngot:  %q\nwant: %q", out, report)
		}

		call := runner.Calls[0]
		want := []string{"status", "--no-pager", "embedding-service.service"}
		if !equalArgs(call.Args, want) {
			t.Errorf("args = %v, want %v", call.Args, want)
		}
	})

	t.Run("stopped unit keeps output and carries exit 3", func(t *testing.T) {
		report := "○ embedding-service.service - embedding-service service\n   Active: inactive (dead)\n"
		runner := &fakeRunner{Results: []Result{{Stdout: report, Code: 3}}}
		sup := newTestSupervisor(runner)

		out, err := sup.Status(context.Background())
		if out != report {
			t.Errorf("output = %q, want %q", out, report)
		}

		var xe *ExitError
		if !errors.As(err, &xe) || xe.Code != 3 {
			t.Fatalf("err = %v, want ExitError code 3", err)
		}
	})
}

func TestSupervisorIsRunning(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		runner := &fakeRunner{Results: []Result{{Stdout: "active\n"}}}
		sup := newTestSupervisor(runner)

		running, err := sup.IsRunning(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !running {
			t.Error("running = false, want true")
		}
	})

	t.Run("inactive exit 3 is not an error", func(t *testing.T) {
		runner := &fakeRunner{Results: []Result{{Stdout: "inactive\n", Code: 3}}}
		sup := newTestSupervisor(runner)

		running, err := sup.IsRunning(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if running {
			t.Error("running = true, want false")
		}
	})
}

func TestSupervisorActiveState(t *testing.T) {
	runner := &fakeRunner{Results: []Result{{Stdout: "failed\n", Code: 3}}}
	sup := newTestSupervisor(runner)

	st, err := sup.ActiveState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != StateFailed {
		t.Errorf("state = %v, want %v", st, StateFailed)
	}
}

func TestSupervisorEmptyService(t *testing.T) {
	sup := NewSupervisor("", WithRunner(&fakeRunner{}), WithSudo(false, ""))

	if err := sup.Start(context.Background()); !errors.Is(err, ErrNoService) {
		t.Errorf("err = %v, want ErrNoService", err)
	}
}

func TestSupervisorDaemonReload(t *testing.T) {
	runner := &fakeRunner{}
	sup := newTestSupervisor(runner)

	if err := sup.DaemonReload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := runner.Calls[0]
	if call.Name != "systemctl" || !equalArgs(call.Args, []string{"daemon-reload"}) {
		t.Errorf("call = %v %v, want systemctl daemon-reload", call.Name, call.Args)
	}
}
