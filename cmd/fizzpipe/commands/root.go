package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fizzpipe/internal/diag"
	"fizzpipe/internal/pipeline"
	"fizzpipe/internal/splice"
)

// Run executes the CLI against the given streams and maps the outcome
// to an exit code: 0 for success or a downstream that closed early,
// 2 for command-line misuse, 3 for runtime failures, 130 when the
// context was canceled mid-run.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var started bool
	root := newRootCmd(stdout, stderr, &started)
	root.SetArgs(argv)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case splice.IsBrokenPipe(err):
		// The consumer went away; everything it wanted arrived.
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case !started:
		_, _ = fmt.Fprintf(stderr, "fizzpipe: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "Run 'fizzpipe --help' for usage.")
		return 2
	default:
		_, _ = fmt.Fprintf(stderr, "fizzpipe: %v\n", err)
		return 3
	}
}

func newRootCmd(stdout, stderr io.Writer, started *bool) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "fizzpipe",
		Short: "Stream the FizzBuzz sequence to stdout as fast as the pipe accepts it",
		Long: `fizzpipe writes the FizzBuzz sequence (1, 2, Fizz, 4, Buzz, ...) to
standard output, unbounded, using incremental packed-decimal text
generation and zero-copy pipe transfers. It runs until interrupted or
until the reader of its output closes.

Diagnostics (digit-width milestones and a run summary) go to stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			*started = true
			return generate(cmd.Context(), stdout, stderr, quiet)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress diagnostics")
	cmd.AddCommand(newVersionCmd(stdout, started))
	return cmd
}

// generate wires the sink and the pipeline together. The sink is
// closed before the summary so the relay (when one was interposed) has
// flushed every byte by the time totals are reported.
func generate(ctx context.Context, stdout, stderr io.Writer, quiet bool) error {
	log := diag.New(stderr, quiet)

	sink, err := splice.Open(stdout)
	if err != nil {
		return err
	}
	stats, runErr := pipeline.Run(ctx, pipeline.Config{Log: log}, sink)
	closeErr := sink.Close()
	diag.Summary(log, stats)

	if runErr != nil {
		return runErr
	}
	return closeErr
}
