package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the group_photos, plan_layout, list_reports and
export_report tools, and the photoreport://reports resources.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  photoreport mcp serve

  # HTTP mode (for MCP Inspector)
  photoreport mcp serve --port 8080

  # HTTP mode reachable from other machines
  photoreport mcp serve --port 8080 --host 0.0.0.0`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if exportService == nil {
		return errors.New("export service not configured")
	}

	ports := &mcp.Ports{
		Export: exportService,
		Report: reportService,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		host, err := cmd.Flags().GetString("host")
		if err != nil {
			return fmt.Errorf("getting host flag: %w", err)
		}
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		cmd.Printf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
