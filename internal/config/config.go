package config

import "os"

const DefaultWorkspacePath = "~/Documents/flowboard"

// WorkspacePath returns the workspace path from the FLOWBOARD_HOME env var,
// falling back to DefaultWorkspacePath.
func WorkspacePath() string {
	if env := os.Getenv("FLOWBOARD_HOME"); env != "" {
		return env
	}
	return DefaultWorkspacePath
}
