package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carmex/tierMCP/pkg/pipeline"
	"github.com/carmex/tierMCP/pkg/safehttp"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string        // output file path, "-" for stdout
	noCache  bool          // disable caching entirely
	cacheDir string        // override the cache directory
	refresh  bool          // re-render and re-fetch even when cached
	timeout  time.Duration // per-image fetch timeout
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [config.json]",
		Short: "Render a tier-list config to a PNG file",
		Long: `Render a tier-list config to a PNG file.

The config is a JSON document listing tiers and items. Items with an
imageUrl are fetched over http(s) from public addresses only; items
without a usable image fall back to their text. Fetched images and
finished renders are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (default: <config>.png, "-" for stdout)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default: XDG cache)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-fetch images")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-image fetch timeout (default 10s)")

	return cmd
}

// runRender loads the config, renders it, and writes the PNG.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := tierlist.ReadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache, opts.cacheDir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Config:  cfg,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	}
	if opts.timeout > 0 {
		pipeOpts.Fetcher = safehttp.NewFetcher(safehttp.Limits{FetchTimeout: opts.timeout})
	}

	spinner := newSpinnerWithContext(ctx, "Rendering tier list...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(input, opts.output)
	if err := writePNG(path, result.PNG); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Render complete")
	if path != "-" {
		printFile(path)
	}
	printStats(result.Stats.ItemCount, result.Stats.TierCount, result.CacheInfo.ArtifactHit)
	return nil
}

// outputPath derives the PNG output path: the explicit output when
// given, otherwise the input with its extension swapped for .png.
func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
}

// writePNG writes data to path, or stdout when path is "-".
func writePNG(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
