package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowboard/internal/application/commands"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// RegisterReadTools adds all read-only workflow tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.TaskRepository, index ports.TaskIndex) {
	s.AddTool(listTasksTool(), listTasksHandler(repo))
	s.AddTool(showGraphTool(), showGraphHandler(repo))
	s.AddTool(layersTool(), layersHandler(repo))
	s.AddTool(searchStepsTool(), searchStepsHandler(index))
	s.AddTool(stepEdgesTool(), stepEdgesHandler(index))
}

// --- list_tasks ---

func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List all workflow tasks with their step counts."),
	)
}

func listTasksHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewListTasksCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Tasks) == 0 {
			return mcp.NewToolResultText("No tasks."), nil
		}

		var sb strings.Builder
		for _, t := range result.Tasks {
			fmt.Fprintf(&sb, "%s  %s  (%d steps)\n", t.ID, t.Title, t.Steps)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_graph ---

func showGraphTool() mcp.Tool {
	return mcp.NewTool("show_graph",
		mcp.WithDescription("Show a task's sub-step graph: every step with its status and position, and every edge."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
	)
}

func showGraphHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")

		result, err := commands.NewShowTaskCommand(repo, taskID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", result.Task.ID, result.Task.Title)
		if result.Task.Description != "" {
			fmt.Fprintf(&sb, "%s\n", result.Task.Description)
		}

		sb.WriteString("\nSteps:\n")
		for _, n := range result.Task.Nodes {
			fmt.Fprintf(&sb, "  %s  [%s]  %s  at (%.0f, %.0f)\n",
				n.ID, n.Status, n.Label, n.Position.X, n.Position.Y)
		}

		if len(result.Edges) > 0 {
			sb.WriteString("\nEdges:\n")
			for _, e := range result.Edges {
				fmt.Fprintf(&sb, "  %s -> %s\n", e.SourceID, e.TargetID)
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- layers ---

func layersTool() mcp.Tool {
	return mcp.NewTool("layers",
		mcp.WithDescription("Show a task's steps grouped into dependency layers. Steps in the same layer have no ordering between them; a trailing layer collects any cycle."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
	)
}

func layersHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")

		result, err := commands.NewShowTaskCommand(repo, taskID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Layers) == 0 {
			return mcp.NewToolResultText("No steps."), nil
		}

		var sb strings.Builder
		for i, layer := range result.Layers {
			fmt.Fprintf(&sb, "Layer %d:\n", i+1)
			for _, n := range layer {
				fmt.Fprintf(&sb, "  %s  [%s]  %s\n", n.ID, n.Status, n.Label)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchStepsTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search step labels across all tasks. Returns matching steps with their task and status."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchStepsHandler(index ports.TaskIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")

		result, err := commands.NewSearchCommand(index, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Hits) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, h := range result.Hits {
			fmt.Fprintf(&sb, "%s  [%s]  %s  (task %s: %s)\n",
				h.NodeID, h.Status, h.Label, h.TaskID, h.TaskTitle)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- step_edges ---

func stepEdgesTool() mcp.Tool {
	return mcp.NewTool("step_edges",
		mcp.WithDescription("List the edges into or out of a step, across all indexed tasks."),
		mcp.WithString("step_id",
			mcp.Description("Step id"),
			mcp.Required(),
		),
		mcp.WithString("direction",
			mcp.Description("\"in\" for edges arriving at the step, \"out\" for edges leaving it. Defaults to both."),
		),
	)
}

func stepEdgesHandler(index ports.TaskIndex) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stepID := req.GetString("step_id", "")
		if stepID == "" {
			return toolError(fmt.Errorf("step_id is required"))
		}
		direction := req.GetString("direction", "")

		var edges []domain.IndexedEdge
		if direction == "" || direction == "in" {
			in, err := index.FindEdgesTo(stepID)
			if err != nil {
				return toolError(err)
			}
			edges = append(edges, in...)
		}
		if direction == "" || direction == "out" {
			out, err := index.FindEdgesFrom(stepID)
			if err != nil {
				return toolError(err)
			}
			edges = append(edges, out...)
		}

		if len(edges) == 0 {
			return mcp.NewToolResultText("No edges."), nil
		}

		var sb strings.Builder
		for _, e := range edges {
			fmt.Fprintf(&sb, "%s -> %s  (task %s)\n", e.SourceID, e.TargetID, e.TaskID)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
