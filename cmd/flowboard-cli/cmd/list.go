package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Long: `List the tasks in the workspace with their step counts.

Examples:
  flowboard-cli list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewListTasksCommand(GetRepo()).Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Tasks) == 0 {
			fmt.Println("No tasks")
			return nil
		}
		for _, t := range result.Tasks {
			fmt.Printf("%s  %s  (%d steps)\n", t.ID, t.Title, t.Steps)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task's step graph",
	Long: `Show a task's steps, edges, and dependency layers.

Examples:
  flowboard-cli show 3f2a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewShowTaskCommand(GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		task := result.Task
		fmt.Printf("%s  %s\n", task.ID, task.Title)
		if task.Description != "" {
			fmt.Println(task.Description)
		}

		fmt.Println("\nSteps:")
		for _, n := range task.Nodes {
			fmt.Printf("  %s  [%s]  %s  at (%.0f, %.0f)\n",
				n.ID, n.Status, n.Label, n.Position.X, n.Position.Y)
		}

		if len(result.Edges) > 0 {
			fmt.Println("\nEdges:")
			for _, e := range result.Edges {
				fmt.Printf("  %s -> %s\n", e.SourceID, e.TargetID)
			}
		}

		if len(result.Layers) > 0 {
			fmt.Println("\nLayers:")
			for i, layer := range result.Layers {
				fmt.Printf("  %d:", i+1)
				for _, n := range layer {
					fmt.Printf(" %s", n.Label)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
