package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/carmex/tierMCP/pkg/pipeline"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	outputDir string // directory for rendered PNGs
	noCache   bool   // disable caching entirely
	cacheDir  string // override the cache directory
	refresh   bool   // re-render and re-fetch even when cached
}

// batchCommand creates the batch command for rendering many configs.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch [config.json]...",
		Short: "Render multiple tier-list configs with a progress view",
		Long: `Render multiple tier-list configs with a progress view.

Configs are rendered one after another, sharing the image cache, so a
logo used by several boards is fetched once. Failures are reported per
config and do not stop the rest of the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "directory for rendered PNGs (default: next to each config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default: XDG cache)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-fetch images")

	return cmd
}

// runBatch renders every input sequentially while a bubbletea view
// tracks progress. The view runs on stderr so stdout stays clean.
func (c *CLI) runBatch(ctx context.Context, inputs []string, opts batchOpts) error {
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	runner, err := c.newRunner(opts.noCache, opts.cacheDir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	renderCtx, cancelRenders := context.WithCancel(ctx)
	defer cancelRenders()

	program := tea.NewProgram(newBatchModel(inputs),
		tea.WithOutput(os.Stderr),
		tea.WithContext(renderCtx))

	// Pipeline logs would tear the progress view; per-config errors
	// surface in the summary instead.
	quiet := log.NewWithOptions(io.Discard, log.Options{})

	go func() {
		for i, input := range inputs {
			start := time.Now()
			output, err := c.renderOne(renderCtx, runner, quiet, input, opts)
			program.Send(itemDoneMsg{
				index:    i,
				output:   output,
				err:      err,
				duration: time.Since(start),
			})
			if renderCtx.Err() != nil {
				return
			}
		}
		program.Send(batchDoneMsg{})
	}()

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	return summarizeBatch(final.(batchModel))
}

// renderOne renders a single config and writes its PNG.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, logger *log.Logger, input string, opts batchOpts) (string, error) {
	cfg, err := tierlist.ReadFile(input)
	if err != nil {
		return "", err
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return "", err
	}

	output := batchOutputPath(input, opts.outputDir)
	if err := os.WriteFile(output, result.PNG, 0o644); err != nil {
		return "", err
	}
	return output, nil
}

// batchOutputPath places the PNG next to its config, or under dir
// keeping the config's base name.
func batchOutputPath(input, dir string) string {
	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	if dir == "" {
		return output
	}
	return filepath.Join(dir, filepath.Base(output))
}

// summarizeBatch prints per-config outcomes after the view exits.
func summarizeBatch(m batchModel) error {
	rendered, failed := 0, 0
	for i, r := range m.results {
		if r == nil {
			continue
		}
		if r.err != nil {
			failed++
			printError("%s: %v", m.inputs[i], r.err)
		} else {
			rendered++
			printFile(r.output)
		}
	}

	printNewline()
	printKeyValue("Rendered", fmt.Sprintf("%d", rendered))
	if failed > 0 {
		printKeyValue("Failed", fmt.Sprintf("%d", failed))
		return fmt.Errorf("%d of %d renders failed", failed, len(m.inputs))
	}
	if m.aborted {
		return fmt.Errorf("aborted after %d of %d renders", rendered, len(m.inputs))
	}
	return nil
}

// itemDoneMsg reports one finished render.
type itemDoneMsg struct {
	index    int
	output   string
	err      error
	duration time.Duration
}

// batchDoneMsg signals that all inputs were processed.
type batchDoneMsg struct{}

// batchResult is the outcome of one input, nil while pending.
type batchResult struct {
	output   string
	err      error
	duration time.Duration
}

// batchModel is the bubbletea model driving the batch progress view.
// Renders happen outside the model; it only reflects completion
// messages, so Update stays trivial to reason about.
type batchModel struct {
	inputs  []string
	results []*batchResult
	done    int
	aborted bool
}

func newBatchModel(inputs []string) batchModel {
	return batchModel{
		inputs:  inputs,
		results: make([]*batchResult, len(inputs)),
	}
}

func (m batchModel) Init() tea.Cmd {
	return nil
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case itemDoneMsg:
		m.results[msg.index] = &batchResult{
			output:   msg.output,
			err:      msg.err,
			duration: msg.duration,
		}
		m.done++
	case batchDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Rendering %d tier lists", len(m.inputs))))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		r := m.results[i]
		switch {
		case r == nil && i == m.done && !m.aborted:
			b.WriteString("  " + styleIconSpinner.Render("…") + " " + StyleDim.Render(input))
		case r == nil:
			b.WriteString("    " + StyleDim.Render(input))
		case r.err != nil:
			b.WriteString("  " + styleIconError.Render(iconError) + " " + input +
				StyleDim.Render("  "+r.err.Error()))
		default:
			b.WriteString("  " + styleIconSuccess.Render(iconSuccess) + " " + input +
				StyleDim.Render("  "+r.duration.Round(time.Millisecond).String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.done, len(m.inputs))))
	b.WriteString("\n")

	return b.String()
}
