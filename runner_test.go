package embedctl

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix coreutils")
	}

	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		res, err := ExecRunner{}.Run(ctx, "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Code != 0 {
			t.Errorf("code = %d, want 0", res.Code)
		}
		if strings.TrimSpace(res.Stdout) != "hello" {
			t.Errorf("stdout = %q, want hello", res.Stdout)
		}
	})

	t.Run("non-zero exit is a result, not an error", func(t *testing.T) {
		res, err := ExecRunner{}.Run(ctx, "false")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Code != 1 {
			t.Errorf("code = %d, want 1", res.Code)
		}
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		_, err := ExecRunner{}.Run(ctx, "embedctl-no-such-binary")
		if err == nil {
			t.Fatal("expected error for missing binary")
		}
	})

	t.Run("forwards stdin", func(t *testing.T) {
		res, err := ExecRunner{}.RunInput(ctx, []byte("piped"), "cat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Stdout != "piped" {
			t.Errorf("stdout = %q, want piped", res.Stdout)
		}
	})
}
