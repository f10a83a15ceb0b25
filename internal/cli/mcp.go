package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carmex/tierMCP/internal/mcp"
)

// mcpCommand creates the mcp command running the stdio server.
func (c *CLI) mcpCommand() *cobra.Command {
	var (
		noCache  bool
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tier-list renderer over MCP on stdin/stdout",
		Long: `Serve the tier-list renderer over MCP on stdin/stdout.

Tool-calling clients speak JSON-RPC 2.0 over the process pipes and get
one tool, render_tier_list, returning the finished PNG as base64 image
content. Logs go to stderr so stdout stays a clean protocol channel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache, cacheDir)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			return mcp.New(runner, c.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: XDG cache)")

	return cmd
}
