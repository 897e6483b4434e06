package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var (
	proposeCount  int
	proposeAccept bool
)

var proposeCmd = &cobra.Command{
	Use:   "propose <task-id>",
	Short: "Ask the plan service for sub-step proposals",
	Long: `Ask the plan generation service to propose new sub-steps for a task.
By default the proposals are only printed; with --accept they are added
to the task as new steps.

Examples:
  flowboard-cli propose 3f2a...
  flowboard-cli propose 3f2a... --count 3 --accept`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewProposeStepsCommand(GetRepo(), GetPlanner(), args[0], proposeCount, proposeAccept).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, p := range result.Proposals {
			if p.Description != "" {
				fmt.Printf("- %s: %s\n", p.Title, p.Description)
			} else {
				fmt.Printf("- %s\n", p.Title)
			}
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a complete task from a prompt",
	Long: `Generate a complete task (steps, edges, layout) from a free-form
prompt and store it in the workspace.

Examples:
  flowboard-cli generate "Migrate the billing service to the new queue"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewGenerateTaskCommand(GetRepo(), GetPlanner(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <task-id> <instructions>",
	Short: "Rework a task's plan",
	Long: `Hand the task to the plan generation service with instructions and
replace its plan with the result. Steps that survive keep their ids.

Examples:
  flowboard-cli regenerate 3f2a... "split the deploy step into staging and prod"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewRegenerateTaskCommand(GetRepo(), GetPlanner(), args[0], args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	proposeCmd.Flags().IntVarP(&proposeCount, "count", "c", 0, "how many proposals to request (default 5)")
	proposeCmd.Flags().BoolVarP(&proposeAccept, "accept", "a", false, "add the proposals to the task")
	rootCmd.AddCommand(proposeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(regenerateCmd)
}
