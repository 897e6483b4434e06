package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var layoutWidth float64

var layoutCmd = &cobra.Command{
	Use:   "layout <task-id>",
	Short: "Auto-layout a task's graph",
	Long: `Recompute every step position from the dependency structure.
Steps are arranged in topological columns, wrapping when a column
would leave the content width.

Examples:
  flowboard-cli layout 3f2a...
  flowboard-cli layout 3f2a... --width 800`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewAutoLayoutCommand(GetRepo(), args[0], layoutWidth).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	layoutCmd.Flags().Float64Var(&layoutWidth, "width", commands.DefaultLayoutWidth, "content width in canvas units")
	rootCmd.AddCommand(layoutCmd)
}
