package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var connectCmd = &cobra.Command{
	Use:   "connect <task-id> <source-id> <target-id>",
	Short: "Connect two steps",
	Long: `Add a directed edge from one step to another. Self-loops are
rejected; connecting an already-connected pair is a no-op.

Examples:
  flowboard-cli connect 3f2a... 9c1b... 7d4e...`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewConnectStepsCommand(GetRepo(), args[0], args[1], args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect <task-id> <source-id> <target-id>",
	Short: "Disconnect two steps",
	Long: `Remove the directed edge between two steps.

Examples:
  flowboard-cli disconnect 3f2a... 9c1b... 7d4e...`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewDisconnectStepsCommand(GetRepo(), args[0], args[1], args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}
