// Package cli implements the tiermcp command-line interface.
//
// Every command funnels into the same pipeline runner, so caching and
// URL safety behave identically whether a tier list is rendered from a
// file (render, batch), over HTTP (serve), or through MCP (mcp). The
// cache and completion commands round out housekeeping.
//
// All commands support --verbose (-v) for debug-level logging. Logs go
// to stderr; stdout carries command output only.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/carmex/tierMCP/pkg/buildinfo"
	"github.com/carmex/tierMCP/pkg/cache"
	"github.com/carmex/tierMCP/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tiermcp"

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
		Use:          "tiermcp",
		Short:        "Tiermcp renders tier lists as PNG images",
		Long:         `Tiermcp turns a JSON tier-list config into a finished PNG, one file at a time, as an HTTP API, or as an MCP server for tool-calling clients.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. dir overrides the
// default cache directory when non-empty.
func (c *CLI) newRunner(noCache bool, dir string) (*pipeline.Runner, error) {
	store, err := newCache(noCache, dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool, dir string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tiermcp/).
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
