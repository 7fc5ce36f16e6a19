package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultEditor is the editor used when $EDITOR is not set.
const DefaultEditor = "vim"

// Config represents revise configuration options.
// It is built once at startup from defaults and flag overrides; there is
// no configuration file and nothing persists between invocations.
type Config struct {
	// Root is the fixed source directory searched by the locator
	Root string

	// Editor is the argv of the interactive editor (matched paths are appended)
	Editor []string

	// Formatter is the argv of the project formatter (run with no extra arguments)
	Formatter []string

	// Checker is the argv of the project static checker (run with no extra arguments)
	Checker []string

	// LogLevel sets the console verbosity (trace, debug, info, warn, error)
	LogLevel string

	// RequireMatch aborts before the editor stage when no file matched
	RequireMatch bool
}

// DefaultConfig returns a Config with sensible default values.
// The editor comes from $EDITOR when set, falling back to vim.
func DefaultConfig() *Config {
	return &Config{
		Root:         "src",
		Editor:       editorFromEnv(),
		Formatter:    []string{"gofmt", "-l", "-w", "."},
		Checker:      []string{"go", "vet", "./..."},
		LogLevel:     "info",
		RequireMatch: false,
	}
}

// editorFromEnv resolves the editor argv from the EDITOR environment
// variable. The value is split on whitespace so settings like
// "code --wait" keep working.
func editorFromEnv() []string {
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return strings.Fields(v)
	}
	return []string{DefaultEditor}
}

// MergeWithFlags merges CLI flag values into the config.
// Only non-nil values override config values (flags take precedence).
// Editor, formatter and checker are whitespace-split into argv form.
func (c *Config) MergeWithFlags(root, editor, formatter, checker *string, requireMatch *bool) {
	if root != nil {
		c.Root = *root
	}
	if editor != nil {
		c.Editor = strings.Fields(*editor)
	}
	if formatter != nil {
		c.Formatter = strings.Fields(*formatter)
	}
	if checker != nil {
		c.Checker = strings.Fields(*checker)
	}
	if requireMatch != nil {
		c.RequireMatch = *requireMatch
	}
}

// Validate checks the configuration for invalid values.
// Returns an error describing the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	if len(c.Editor) == 0 {
		return fmt.Errorf("editor command must not be empty")
	}
	if len(c.Formatter) == 0 {
		return fmt.Errorf("formatter command must not be empty")
	}
	if len(c.Checker) == 0 {
		return fmt.Errorf("checker command must not be empty")
	}
	return nil
}
