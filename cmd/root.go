package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// RootCmd is the base command: it concatenates the files selected by its
// pattern arguments.
var RootCmd = &cobra.Command{
	Use:   "globcat [flags] [pattern...] [output]",
	Short: "Concatenate files selected by glob patterns into one file",
	Long: `globcat writes the files matched by name patterns into a single output file,
each preceded by a "--- START: <path> ---" marker, and closes the output with
"--- END ---".

A pattern is a literal directory plus a name glob ("src/*.go"); only direct
children of the directory are matched. '*' matches any run of characters and
'?' exactly one. With no patterns, every regular file in the working
directory is selected. When --output is not given and two or more arguments
are passed, the last argument is the output path unless it contains '*' or
'?'.`,
	Example: `  globcat '*.go' all-go.txt
  globcat -d 'src/*.py' 'tests/test_?.py' bundle.txt
  globcat -i -o review.txt`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCombine,
}

// reportedError marks an error already shown to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the root command with ctx, which is cancelled on interrupt.
// Errors not already reported by the command are printed to stderr.
func Execute(ctx context.Context) error {
	err := RootCmd.ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(RootCmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}
