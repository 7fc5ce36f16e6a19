package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/revise/internal/cmd"
	"github.com/harrison/revise/internal/locator"
	"github.com/harrison/revise/internal/pipeline"
)

// Exit statuses for failures that happen before or outside a pipeline
// stage. A stage that ran and failed propagates its own exit code.
const (
	exitFailure      = 1   // generic failure
	exitUsage        = 2   // bad pattern, missing root, flag misuse
	exitLaunchFailed = 127 // stage tool could not be started
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an execution error to the process exit status.
// Stage failures carry the failing tool's own exit code through, per
// the pipeline contract; everything else gets a fixed status.
func exitCode(err error) int {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		if stageErr.Code > 0 {
			return stageErr.Code
		}
		// Killed by signal or unknown status
		return exitFailure
	}

	var launchErr *pipeline.LaunchError
	if errors.As(err, &launchErr) {
		return exitLaunchFailed
	}

	if errors.Is(err, locator.ErrNoSuchDirectory) || errors.Is(err, locator.ErrInvalidPattern) {
		return exitUsage
	}

	return exitFailure
}
