// Command dagcritic is the CLI surface for the DAG critic evaluation
// engine: run a full evaluation against a dataset, render a stored
// report as HTML, or serve the run/report API over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for the CLI surface.
const (
	exitOK                = 0
	exitValidationFailure = 1
	exitLLMUnreachable    = 2
	exitInternalError     = 3
)

func main() {
	root := &cobra.Command{
		Use:           "dagcritic",
		Short:         "Evaluate an LLM's ability to build and critique DAGs over a dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dagcritic:", err)
		os.Exit(exitCodeFor(err))
	}
}
