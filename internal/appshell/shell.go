// Package appshell owns the process boundary: signal wiring, stream
// binding, and the final exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs the command with a signal-aware context and exits with its
// code. SIGPIPE is taken over so a closed stdout surfaces as EPIPE from
// the transfer syscall instead of killing the process before it can
// finish reporting; SIGINT/SIGTERM cancel the context and the run stops
// at the next chunk boundary.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	// The runtime default makes raw writes to a closed fd 1 fatal.
	signal.Ignore(syscall.SIGPIPE)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
