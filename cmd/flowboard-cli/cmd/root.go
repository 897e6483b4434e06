package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowboard/internal/adapters/claudecli"
	"flowboard/internal/adapters/filesystem"
	"flowboard/internal/adapters/sqlite"
	"flowboard/internal/config"
	"flowboard/internal/ports"
)

var (
	workspacePath string
	repo          ports.TaskRepository
	planner       ports.PlanService
)

var rootCmd = &cobra.Command{
	Use:   "flowboard-cli",
	Short: "CLI for managing workflow task graphs",
	Long: `flowboard-cli is a command-line interface for managing workflow tasks
and their sub-step graphs.

It provides commands to list, show, create, connect, lay out, and search
steps, and to request plan proposals from the plan generation service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		repo = filesystem.NewRepository(workspacePath)
		planner = claudecli.NewPlanner()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", config.WorkspacePath(), "path to the task workspace")
}

// GetRepo returns the initialized repository
func GetRepo() ports.TaskRepository {
	return repo
}

// GetPlanner returns the initialized plan service
func GetPlanner() ports.PlanService {
	return planner
}

// OpenIndex opens the sqlite index for the current workspace.
// The caller owns the returned index and must Close it.
func OpenIndex() (ports.TaskIndex, error) {
	index := sqlite.NewIndex()
	if err := index.Open(workspacePath); err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return index, nil
}
