// Package embedctl provides the building blocks for the embedctl command,
// an operator tool for a systemd-supervised embedding HTTP service.
//
// The core functionality centers around the Supervisor type, which wraps
// systemctl operations for a single service:
//
//	sup := embedctl.NewSupervisor("embedding-service")
//
//	// Start the service
//	err := sup.Start(context.Background())
//
//	// Pass through the supervisor's status report
//	out, err := sup.Status(context.Background())
//	fmt.Print(out)
//
// All external invocations go through the Runner interface, so callers can
// substitute a recording fake for deterministic tests. The HealthClient
// talks to the service's HTTP health endpoint directly and never shells out.
//
// # Design Philosophy
//
// This package prioritizes:
//
//   - Explicit exit-code handling (subprocess status is captured, never
//     inherited from incidental last-statement semantics)
//   - Injectable capabilities (process runner, HTTP client, sudo policy)
//   - Context-aware operations with per-call timeouts
//   - Type safety (no string-based operation codes)
package embedctl
