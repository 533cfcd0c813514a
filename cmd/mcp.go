package cmd

import (
	"github.com/spf13/cobra"

	"debtscan/internal/contract"
	"debtscan/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the debtscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to run debt scans, hotspot rankings and trend analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so setup must not write to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalGitClient())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
