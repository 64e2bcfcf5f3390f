package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pages and search to MCP clients",
	Long: `Serve the note store to MCP clients.

Tools:      search, replace_in_block
Resources:  bismuth://pages
            bismuth://pages/{pageId}/blocks
            bismuth://pages/{pageId}/markdown

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants launch. With --port it serves streamable HTTP instead.

  bismuth mcp serve
  bismuth mcp serve --port 8080 --host 0.0.0.0

A client entry for stdio mode:

  {"mcpServers": {"bismuth": {"command": "bismuth", "args": ["mcp", "serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind in HTTP mode")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search: searchService,
		Page:   pageService,
		Block:  blockService,
		Export: exportService,
	})
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort)))
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	cmd.Printf("MCP server listening on http://%s\n", ln.Addr())
	return server.Serve(cmd.Context(), ln)
}
