package cmd

import (
	"fmt"
	"os"

	"github.com/harrison/revise/internal/config"
	"github.com/harrison/revise/internal/locator"
	"github.com/harrison/revise/internal/logger"
	"github.com/harrison/revise/internal/pipeline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for revise
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revise <pattern>",
		Short: "Find, edit, format and check source files",
		Long: `Revise locates files under the source root whose path matches the
given case-insensitive pattern, opens them in your editor, and after a
clean editor exit runs the formatter and then the static checker over
the whole project, stopping at the first failure.

The pattern is a regular expression matched against the full file path.
The editor defaults to $EDITOR (falling back to vim); the matched paths
become its arguments. The formatter and checker run with no extra
arguments and their exit status is propagated as the exit status of
revise.

Examples:
  # Edit everything whose path mentions parser, then format and check
  revise parser

  # Case-insensitive regex over the full path
  revise 'foo.*\.txt$'

  # Other options
  revise --root lib handler        # Search a different root
  revise --editor 'code --wait' db # Use a different editor
  revise --require-match missing   # Abort instead of opening an empty editor
  revise --verbose parser          # Show detailed progress`,
		Version: Version,
		Args:    cobra.ExactArgs(1),
		RunE:    runRevise,
		// Silence usage on errors to avoid duplicate help text;
		// main prints the error alongside the mapped exit status
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add flags
	cmd.Flags().String("root", "", "Source root to search (default: src)")
	cmd.Flags().String("editor", "", "Editor command (default: $EDITOR or vim)")
	cmd.Flags().String("formatter", "", "Formatter command (default: gofmt -l -w .)")
	cmd.Flags().String("checker", "", "Static checker command (default: go vet ./...)")
	cmd.Flags().Bool("require-match", false, "Fail instead of launching the editor when nothing matched")
	cmd.Flags().Bool("verbose", false, "Show detailed execution information")

	return cmd
}

// runRevise implements the root command logic
func runRevise(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	// Build flag pointers for merge (only changed values)
	var rootPtr, editorPtr, formatterPtr, checkerPtr *string
	if cmd.Flags().Changed("root") {
		v, _ := cmd.Flags().GetString("root")
		rootPtr = &v
	}
	if cmd.Flags().Changed("editor") {
		v, _ := cmd.Flags().GetString("editor")
		editorPtr = &v
	}
	if cmd.Flags().Changed("formatter") {
		v, _ := cmd.Flags().GetString("formatter")
		formatterPtr = &v
	}
	if cmd.Flags().Changed("checker") {
		v, _ := cmd.Flags().GetString("checker")
		checkerPtr = &v
	}
	var requireMatchPtr *bool
	if cmd.Flags().Changed("require-match") {
		v, _ := cmd.Flags().GetBool("require-match")
		requireMatchPtr = &v
	}

	// Merge CLI flags with defaults (flags take precedence)
	cfg.MergeWithFlags(rootPtr, editorPtr, formatterPtr, checkerPtr, requireMatchPtr)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Determine log level: verbose flag overrides config
	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}

	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), logLevel)

	// Locate matching files before any stage runs
	pattern := args[0]
	matches, err := locator.Locate(cfg.Root, pattern)
	if err != nil {
		return err
	}
	consoleLog.LogMatches(cfg.Root, len(matches))
	for _, m := range matches {
		consoleLog.LogDebug(m)
	}

	if len(matches) == 0 && cfg.RequireMatch {
		return fmt.Errorf("no files matching %q under %s", pattern, cfg.Root)
	}

	// An empty match set still opens the editor so the user can see the
	// "no matches" outcome interactively and continue to format/check
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		consoleLog.LogDebug("stdin is a terminal")
	} else {
		consoleLog.LogWarn("stdin is not a terminal; the editor may not be usable interactively")
	}

	runner := pipeline.NewRunner(cfg)
	runner.Logger = consoleLog

	return runner.Run(cmd.Context(), matches)
}
