package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowboard/internal/application/commands"
	"flowboard/internal/ports"
)

// RegisterWriteTools adds all mutating workflow tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.TaskRepository, planner ports.PlanService) {
	s.AddTool(createTaskTool(), createTaskHandler(repo))
	s.AddTool(deleteTaskTool(), deleteTaskHandler(repo))
	s.AddTool(addStepTool(), addStepHandler(repo))
	s.AddTool(removeStepTool(), removeStepHandler(repo))
	s.AddTool(setStatusTool(), setStatusHandler(repo))
	s.AddTool(connectStepsTool(), connectStepsHandler(repo))
	s.AddTool(disconnectStepsTool(), disconnectStepsHandler(repo))
	s.AddTool(autoLayoutTool(), autoLayoutHandler(repo))
	s.AddTool(proposeStepsTool(), proposeStepsHandler(repo, planner))
	s.AddTool(generateTaskTool(), generateTaskHandler(repo, planner))
	s.AddTool(regenerateTaskTool(), regenerateTaskHandler(repo, planner))
}

// --- create_task ---

func createTaskTool() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new empty workflow task."),
		mcp.WithString("title",
			mcp.Description("Task title"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional task description"),
		),
	)
}

func createTaskHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")
		description := req.GetString("description", "")

		result, err := commands.NewCreateTaskCommand(repo, title, description).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_task ---

func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task and all of its steps."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
	)
}

func deleteTaskHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")

		result, err := commands.NewDeleteTaskCommand(repo, taskID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_step ---

func addStepTool() mcp.Tool {
	return mcp.NewTool("add_step",
		mcp.WithDescription("Add a sub-step to a task. The step starts as not_started with no connections."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("label",
			mcp.Description("Step label"),
			mcp.Required(),
		),
	)
}

func addStepHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		label := req.GetString("label", "")

		result, err := commands.NewAddStepCommand(repo, taskID, label).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- remove_step ---

func removeStepTool() mcp.Tool {
	return mcp.NewTool("remove_step",
		mcp.WithDescription("Remove a step from a task, along with every edge touching it."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("step_id",
			mcp.Description("Step id"),
			mcp.Required(),
		),
	)
}

func removeStepHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		stepID := req.GetString("step_id", "")

		result, err := commands.NewRemoveStepCommand(repo, taskID, stepID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_status ---

func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Set a step's status."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("step_id",
			mcp.Description("Step id"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("One of: not_started, in_progress, completed"),
			mcp.Required(),
		),
	)
}

func setStatusHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		stepID := req.GetString("step_id", "")
		status := req.GetString("status", "")

		result, err := commands.NewSetStatusCommand(repo, taskID, stepID, status).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- connect_steps ---

func connectStepsTool() mcp.Tool {
	return mcp.NewTool("connect_steps",
		mcp.WithDescription("Add a directed edge from one step to another within a task. Self-loops and duplicates are rejected."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("source_id",
			mcp.Description("Step the edge leaves from"),
			mcp.Required(),
		),
		mcp.WithString("target_id",
			mcp.Description("Step the edge arrives at"),
			mcp.Required(),
		),
	)
}

func connectStepsHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		sourceID := req.GetString("source_id", "")
		targetID := req.GetString("target_id", "")

		result, err := commands.NewConnectStepsCommand(repo, taskID, sourceID, targetID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- disconnect_steps ---

func disconnectStepsTool() mcp.Tool {
	return mcp.NewTool("disconnect_steps",
		mcp.WithDescription("Remove the directed edge between two steps."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("source_id",
			mcp.Description("Step the edge leaves from"),
			mcp.Required(),
		),
		mcp.WithString("target_id",
			mcp.Description("Step the edge arrives at"),
			mcp.Required(),
		),
	)
}

func disconnectStepsHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		sourceID := req.GetString("source_id", "")
		targetID := req.GetString("target_id", "")

		result, err := commands.NewDisconnectStepsCommand(repo, taskID, sourceID, targetID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- auto_layout ---

func autoLayoutTool() mcp.Tool {
	return mcp.NewTool("auto_layout",
		mcp.WithDescription("Recompute every step position from the dependency structure."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithNumber("width",
			mcp.Description("Content width in canvas units (default 1200)"),
		),
	)
}

func autoLayoutHandler(repo ports.TaskRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		width := req.GetFloat("width", commands.DefaultLayoutWidth)

		result, err := commands.NewAutoLayoutCommand(repo, taskID, width).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- propose_steps ---

func proposeStepsTool() mcp.Tool {
	return mcp.NewTool("propose_steps",
		mcp.WithDescription("Ask the plan generation service for sub-step proposals. With accept set, the proposals are added to the task immediately."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithNumber("count",
			mcp.Description("How many proposals to request (default 5)"),
		),
		mcp.WithBoolean("accept",
			mcp.Description("Add the proposals to the task as new steps"),
		),
	)
}

func proposeStepsHandler(repo ports.TaskRepository, planner ports.PlanService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		count := req.GetInt("count", 0)
		accept := req.GetBool("accept", false)

		result, err := commands.NewProposeStepsCommand(repo, planner, taskID, count, accept).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteString("\n")
		for _, p := range result.Proposals {
			fmt.Fprintf(&sb, "- %s", p.Title)
			if p.Description != "" {
				fmt.Fprintf(&sb, ": %s", p.Description)
			}
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- generate_task ---

func generateTaskTool() mcp.Tool {
	return mcp.NewTool("generate_task",
		mcp.WithDescription("Generate a complete task (steps, edges, layout) from a free-form prompt."),
		mcp.WithString("prompt",
			mcp.Description("What the workflow should accomplish"),
			mcp.Required(),
		),
	)
}

func generateTaskHandler(repo ports.TaskRepository, planner ports.PlanService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt := req.GetString("prompt", "")

		result, err := commands.NewGenerateTaskCommand(repo, planner, prompt).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- regenerate_task ---

func regenerateTaskTool() mcp.Tool {
	return mcp.NewTool("regenerate_task",
		mcp.WithDescription("Rework an existing task's plan per the given instructions. Surviving steps keep their ids."),
		mcp.WithString("task_id",
			mcp.Description("Task id"),
			mcp.Required(),
		),
		mcp.WithString("instructions",
			mcp.Description("How the plan should change"),
			mcp.Required(),
		),
	)
}

func regenerateTaskHandler(repo ports.TaskRepository, planner ports.PlanService) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID := req.GetString("task_id", "")
		instructions := req.GetString("instructions", "")

		result, err := commands.NewRegenerateTaskCommand(repo, planner, taskID, instructions).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
