package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fizzpipe/cmd/fizzpipe/internal/build"
)

func newVersionCmd(stdout io.Writer, started *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			*started = true
			_, err := fmt.Fprintln(stdout, build.String())
			return err
		},
	}
}
