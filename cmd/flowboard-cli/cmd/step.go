package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <task-id> <label>",
	Short: "Add a step to a task",
	Long: `Add a sub-step to a task. The step starts as not_started with no
connections.

Examples:
  flowboard-cli add 3f2a... "Write the migration"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewAddStepCommand(GetRepo(), args[0], args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <task-id> <step-id>",
	Short: "Remove a step from a task",
	Long: `Remove a step and every edge touching it.

Examples:
  flowboard-cli remove 3f2a... 9c1b...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewRemoveStepCommand(GetRepo(), args[0], args[1]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <task-id> <step-id> <status>",
	Short: "Set a step's status",
	Long: `Set a step's status to not_started, in_progress, or completed.

Examples:
  flowboard-cli status 3f2a... 9c1b... in_progress`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewSetStatusCommand(GetRepo(), args[0], args[1], args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statusCmd)
}
