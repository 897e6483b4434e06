package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"flowboard/internal/adapters/tui/styles"
	"flowboard/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderTitle renders a title with the standard title style
func RenderTitle(title string) string {
	return styles.Title.Render(title)
}

// RenderMuted renders muted/secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// StatusGlyph returns the one-cell indicator for a step status
func StatusGlyph(status domain.Status) string {
	var glyph string
	switch status {
	case domain.StatusInProgress:
		glyph = "◐"
	case domain.StatusCompleted:
		glyph = "●"
	default:
		glyph = "○"
	}
	return statusStyle(status).Render(glyph)
}

// RenderStatusName renders a status string in its accent color
func RenderStatusName(status domain.Status) string {
	return statusStyle(status).Render(status.String())
}

func statusStyle(status domain.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.StatusColor(string(status)))
}
