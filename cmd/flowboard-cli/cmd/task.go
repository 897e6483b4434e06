package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var createDescription string

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Long: `Create a new empty task in the workspace.

Examples:
  flowboard-cli create "Ship the release"
  flowboard-cli create "Ship the release" --description "Everything for 2.0"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewCreateTaskCommand(GetRepo(), args[0], createDescription).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long: `Delete a task and all of its steps.

Examples:
  flowboard-cli delete 3f2a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewDeleteTaskCommand(GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		// Drop the cached rows too; a dead index entry would still match
		// searches.
		if index, idxErr := OpenIndex(); idxErr == nil {
			defer index.Close()
			_ = index.RemoveTask(args[0])
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "task description")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
}
