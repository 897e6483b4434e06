package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/adapters/claudecli"
	"flowboard/internal/adapters/editor"
	"flowboard/internal/adapters/filesystem"
	"flowboard/internal/adapters/sqlite"
	"flowboard/internal/adapters/sysopen"
	"flowboard/internal/adapters/tui"
	"flowboard/internal/config"
	"flowboard/internal/ports"
)

// indexOrNil keeps a failed index out of the app: a typed nil pointer in
// the interface would dodge every nil check downstream.
func indexOrNil(idx *sqlite.Index) ports.TaskIndex {
	if idx == nil {
		return nil
	}
	return idx
}

func main() {
	workspace := config.WorkspacePath()

	// Initialize adapters
	repo := filesystem.NewRepository(workspace)
	planner := claudecli.NewPlanner()

	// Without $EDITOR, attachments go to the desktop's default handler
	var editorOpener ports.EditorOpener = editor.NewOpener()
	if os.Getenv("EDITOR") == "" {
		editorOpener = sysopen.NewOpener()
	}

	index := sqlite.NewIndex()
	if err := index.Open(workspace); err != nil {
		// The editor works without cross-task search
		fmt.Fprintf(os.Stderr, "Warning: search index unavailable: %v\n", err)
		index = nil
	}
	if index != nil {
		defer index.Close()
	}

	// Create and run TUI app
	app := tui.NewApp(repo, planner, indexOrNil(index), editorOpener)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
