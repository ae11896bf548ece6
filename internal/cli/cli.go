// Package cli implements the arbor command-line interface.
//
// This package provides commands for rendering tree documents (JSON, TOML,
// YAML) as branch diagrams, browsing them interactively, and serving a
// small render endpoint over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Draw a document as a text, DOT, SVG, or PNG diagram
//   - view: Browse a document interactively in the terminal
//   - serve: Expose rendering over HTTP with a result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// PrintError reports a command failure with the CLI's status styling.
// Coded errors show their user message; plain errors print as-is.
func PrintError(err error) {
	printError("%s", errors.UserMessage(err))
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     appName,
		Short:   "Arbor draws tree-shaped data as branch diagrams",
		Long:    `Arbor renders tree-shaped documents (JSON, TOML, YAML) as indented branch diagrams with configurable glyphs, depth limits, and key labels, plus DOT/SVG/PNG export and an HTTP render endpoint.`,
		Version: buildinfo.Version,
		// main reports failures through PrintError; cobra's own error
		// echo would duplicate them.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
