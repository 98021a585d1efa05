// Package cli implements the pedtools command-line interface.
//
// This package provides commands for validating pedigree files, reordering
// members so parents precede children, exporting genotype tables, rendering
// pedigree diagrams, and serving pedigrees over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Validate a pedigree definition file
//   - reorder: Rewrite a pedigree so parents precede their children
//   - table: Export a pedigree and its markers as a tab-separated table
//   - plot: Render a pedigree diagram (SVG, PNG, or DOT)
//   - view: Browse pedigree members interactively
//   - serve: Run the pedigree HTTP server
//   - cache: Manage the rendered-diagram cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/buildinfo"
	"github.com/thoree/pedtools/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "pedtools"

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
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pedtools",
		Short:        "Pedtools creates and manipulates pedigrees with genetic markers",
		Long:         `Pedtools is a CLI tool for working with pedigree files: validating structure, reordering members, attaching genetic markers, and rendering pedigree diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.reorderCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache creates the artifact cache, or a null cache when disabled.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pedtools/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
