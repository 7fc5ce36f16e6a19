// Package pipeline executes the edit, format and check stages as
// external subprocesses in strict sequence.
//
// Each stage blocks until its child process terminates, and a later
// stage never runs unless the previous stage reported success. The
// first failure halts the pipeline and carries the failing tool's exit
// status back to the caller; nothing is retried.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/harrison/revise/internal/config"
)

// Stage names reported in errors and progress output.
const (
	StageEdit   = "edit"
	StageFormat = "format"
	StageCheck  = "check"
)

// StageError indicates an external tool started, ran, and terminated
// with a non-success status. It short-circuits later stages but is a
// normal, expected outcome path rather than an internal failure.
type StageError struct {
	// Stage is the name of the failing stage (edit, format or check)
	Stage string

	// Code is the tool's exit status
	Code int

	// Err is the underlying process error
	Err error
}

// Error returns a human-readable description of the stage failure.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed with exit status %d", e.Stage, e.Code)
}

// Unwrap returns the underlying process error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// LaunchError indicates an external tool could not be started at all
// (missing binary, permission denied). Fatal for the invocation.
type LaunchError struct {
	// Stage is the name of the stage whose tool failed to launch
	Stage string

	// Err is the underlying launch error
	Err error
}

// Error returns a human-readable description of the launch failure.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying launch error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Stage is one external tool invocation in the pipeline.
type Stage struct {
	// Name identifies the stage in errors and progress output
	Name string

	// Command is the tool argv; must have at least one element
	Command []string
}

// Logger receives pipeline progress notifications.
// Can be nil for silent operation.
type Logger interface {
	LogStageStart(stage string)
	LogStageComplete(stage string, duration time.Duration)
	LogDebug(message string)
}

// Runner executes the three pipeline stages in order.
// It follows the http.Client pattern: create once, run once per
// invocation. Stdio is inherited by every child so the editor stays
// interactive and tool diagnostics stream straight through.
type Runner struct {
	// Edit is the interactive editor stage; matched paths are appended
	// to its command
	Edit Stage

	// Format is the project formatter stage, run with no extra arguments
	Format Stage

	// Check is the static checker stage, run with no extra arguments
	Check Stage

	// Dir is the working directory for every stage ("" = inherit)
	Dir string

	// Stdin, Stdout and Stderr are passed to every child process.
	// Nil values leave the child with no corresponding stream.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives progress notifications; can be nil
	Logger Logger
}

// NewRunner creates a Runner wired from the configuration, with stdio
// inherited from the current process.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Edit:   Stage{Name: StageEdit, Command: cfg.Editor},
		Format: Stage{Name: StageFormat, Command: cfg.Formatter},
		Check:  Stage{Name: StageCheck, Command: cfg.Checker},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the pipeline against the matched paths.
//
// Stage order is edit, format, check. The matched paths become extra
// arguments to the edit stage only; an empty match set still launches
// the editor with no file arguments. Stage N+1 never executes unless
// stage N succeeded. The returned error is nil when all three stages
// succeed, otherwise a *StageError or *LaunchError for the first stage
// that failed.
func (r *Runner) Run(ctx context.Context, matches []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := r.runStage(ctx, r.Edit, matches); err != nil {
		return err
	}
	if err := r.runStage(ctx, r.Format, nil); err != nil {
		return err
	}
	return r.runStage(ctx, r.Check, nil)
}

// runStage launches one external tool and blocks until it terminates.
// Extra arguments are appended after the configured command.
func (r *Runner) runStage(ctx context.Context, stage Stage, extra []string) error {
	if len(stage.Command) == 0 {
		return &LaunchError{Stage: stage.Name, Err: fmt.Errorf("empty command")}
	}

	argv := make([]string, 0, len(stage.Command)+len(extra))
	argv = append(argv, stage.Command...)
	argv = append(argv, extra...)

	if r.Logger != nil {
		r.Logger.LogStageStart(stage.Name)
		r.Logger.LogDebug(fmt.Sprintf("running: %s", strings.Join(argv, " ")))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &StageError{Stage: stage.Name, Code: exitErr.ExitCode(), Err: err}
		}
		return &LaunchError{Stage: stage.Name, Err: err}
	}

	if r.Logger != nil {
		r.Logger.LogStageComplete(stage.Name, time.Since(start))
	}
	return nil
}
