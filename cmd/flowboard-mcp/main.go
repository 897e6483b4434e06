package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowboard/internal/adapters/claudecli"
	"flowboard/internal/adapters/filesystem"
	mcpadapter "flowboard/internal/adapters/mcp"
	"flowboard/internal/adapters/sqlite"
	"flowboard/internal/config"
)

func main() {
	workspaceFlag := flag.String("workspace", config.WorkspacePath(), "path to the task workspace")
	flag.Parse()

	repo := filesystem.NewRepository(*workspaceFlag)
	planner := claudecli.NewPlanner()

	index := sqlite.NewIndex()
	if err := index.Open(*workspaceFlag); err != nil {
		log.Fatalf("flowboard-mcp: opening index: %v", err)
	}
	defer index.Close()

	mcpServer := server.NewMCPServer(
		"flowboard-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, index)
	mcpadapter.RegisterWriteTools(mcpServer, repo, planner)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("flowboard-mcp: %v", err)
	}
}
