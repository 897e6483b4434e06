package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search step labels across all tasks",
	Long: `Search the step index by label. The index is refreshed by the sync
command and on every save from the editor.

Examples:
  flowboard-cli search migration`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		index, err := OpenIndex()
		if err != nil {
			return err
		}
		defer index.Close()

		result, err := commands.NewSearchCommand(index, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Hits) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, h := range result.Hits {
			fmt.Printf("[%s] %s  %s  (task: %s)\n", h.Status, h.NodeID, h.Label, h.TaskTitle)
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the step index from the workspace",
	Long: `Load every task in the workspace and rewrite its rows in the step
index. Run this after editing task files by hand.

Examples:
  flowboard-cli sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := OpenIndex()
		if err != nil {
			return err
		}
		defer index.Close()

		summaries, err := GetRepo().List()
		if err != nil {
			return err
		}

		var nodes, edges int
		for _, s := range summaries {
			task, err := GetRepo().Load(s.ID)
			if err != nil {
				return fmt.Errorf("failed to load task %s: %w", s.ID, err)
			}
			stats, err := index.SyncTask(task)
			if err != nil {
				return fmt.Errorf("failed to sync task %s: %w", s.ID, err)
			}
			nodes += stats.NodesAdded
			edges += stats.EdgesAdded
		}

		fmt.Printf("Synced %d tasks (%d steps, %d edges)\n", len(summaries), nodes, edges)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(syncCmd)
}
