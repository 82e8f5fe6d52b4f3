package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/actionboard/internal/tui/styles"
)

// Sections listed in the left help column; the rest go right.
var helpLeftColumn = map[string]bool{
	"Navigation": true,
	"Transcript": true,
	"General":    true,
}

// renderHelp renders the key binding reference in two columns.
func (r *Renderer) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	var left, right strings.Builder
	current := &left

	for _, item := range r.Keymap.HelpItems() {
		if len(item) < 2 {
			continue
		}
		key, desc := item[0], item[1]

		if desc == "" && key != "" {
			if helpLeftColumn[key] {
				current = &left
			} else {
				current = &right
			}
			current.WriteString("\n" + styles.SectionHeader.Render(" "+key+" ") + "\n")
			continue
		}
		if key == "" && desc == "" {
			continue
		}

		keyStyle := styles.HelpKey.Copy().Width(14).Align(lipgloss.Right).PaddingRight(2)
		current.WriteString(keyStyle.Render(key) + styles.HelpDesc.Render(desc) + "\n")
	}

	colWidth := r.Width / 2
	if colWidth > 50 {
		colWidth = 50
	}
	column := lipgloss.NewStyle().Width(colWidth).PaddingLeft(2).PaddingRight(2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, column.Render(left.String()), column.Render(right.String())))
	b.WriteString("\n\n")

	footer := styles.HelpDesc.Render("Press esc or ? to close")
	b.WriteString(lipgloss.NewStyle().Width(r.Width).Align(lipgloss.Center).Render(footer))

	return b.String()
}
