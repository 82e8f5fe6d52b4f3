package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/actionboard/internal/tui/styles"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// overlay centers a dialog on the screen.
func (r *Renderer) overlay(dialog string) string {
	return lipgloss.Place(r.Width, r.Height, lipgloss.Center, lipgloss.Center, dialog)
}

// renderAlert renders a blocking error dismissed by any key.
func (r *Renderer) renderAlert() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ResultError.Render(utils.SanitizeLine(r.Alert)),
		"",
		styles.HelpDesc.Render("Press any key to continue"),
	)
	return styles.DialogError.Render(content)
}

// renderConfirmDelete renders the delete confirmation.
func (r *Renderer) renderConfirmDelete() string {
	text := utils.TruncateString(utils.SanitizeLine(r.Confirm.Text), 50)
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.DialogTitle.Render("Are you sure you want to delete this task?"),
		"",
		styles.TaskText.Render(text),
		"",
		styles.StatusBarKey.UnsetBackground().Render("y")+styles.HelpDesc.Render(": delete  ")+
			styles.StatusBarKey.UnsetBackground().Render("any other key")+styles.HelpDesc.Render(": cancel"),
	)
	return styles.Dialog.Render(content)
}
