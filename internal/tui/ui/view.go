package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/styles"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// wideLayout is the terminal width from which tasks and history sit side by side.
const wideLayout = 100

// Renderer draws the board. It only reads state.
type Renderer struct {
	*state.State
}

func NewRenderer(s *state.State) *Renderer {
	return &Renderer{State: s}
}

func (r *Renderer) View() string {
	if r.Width == 0 {
		return "Loading..."
	}

	var content string
	switch r.CurrentView {
	case state.ViewHelp:
		content = r.renderHelp()
	default:
		content = r.renderBoard()
	}

	// Blocking dialogs sit on top of everything else.
	switch {
	case r.Alert != "":
		content = r.overlay(r.renderAlert())
	case r.Confirm != nil:
		content = r.overlay(r.renderConfirmDelete())
	}

	return content
}

// renderBoard renders header, transcript box, task list, history and status bar.
func (r *Renderer) renderBoard() string {
	header := r.renderHeader()
	statusBar := r.renderStatusBar()
	transcript := r.renderTranscriptPane(r.Width)

	remaining := r.Height - lipgloss.Height(header) - lipgloss.Height(statusBar) - lipgloss.Height(transcript)
	if remaining < 6 {
		remaining = 6
	}

	var lists string
	if r.Width >= wideLayout {
		historyWidth := r.Width / 3
		tasksWidth := r.Width - historyWidth - 1
		tasks := r.renderTasksPane(tasksWidth, remaining)
		history := r.renderHistoryPane(historyWidth, remaining)
		lists = lipgloss.JoinHorizontal(lipgloss.Top, tasks, " ", history)
	} else {
		historyHeight := remaining / 3
		if historyHeight < 5 {
			historyHeight = 5
		}
		tasks := r.renderTasksPane(r.Width, remaining-historyHeight)
		history := r.renderHistoryPane(r.Width, historyHeight)
		lists = lipgloss.JoinVertical(lipgloss.Left, tasks, history)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, transcript, lists, statusBar)
}

// renderHeader renders the title and backend health.
func (r *Renderer) renderHeader() string {
	title := styles.Title.Render("Meeting Action Items")
	health := r.renderHealth()

	spacing := r.Width - lipgloss.Width(title) - lipgloss.Width(health) - 1
	if spacing < 1 {
		spacing = 1
	}
	return " " + title + strings.Repeat(" ", spacing) + health
}

func (r *Renderer) renderHealth() string {
	switch {
	case r.HealthErr != nil:
		return styles.HealthDown.Render("● backend unreachable")
	case r.Health == nil:
		return styles.HealthDegraded.Render("○ checking...")
	case r.Health.Healthy():
		return styles.HealthOK.Render("● backend ok")
	default:
		return styles.HealthDegraded.Render("● " + utils.SanitizeLine("db: "+r.Health.Database+" llm: "+r.Health.LLM))
	}
}

// pane frames content, highlighting the focused pane.
func (r *Renderer) pane(p state.Pane, title string, width int, body string) string {
	style := styles.Pane
	if r.FocusedPane == p && r.CurrentView == state.ViewBoard {
		style = styles.PaneFocused
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	return style.Width(inner).Render(styles.Subtitle.Render(title) + "\n" + body)
}

// renderStatusBar renders the status message and contextual key hints.
func (r *Renderer) renderStatusBar() string {
	left := ""
	if r.StatusMsg != "" {
		left = styles.StatusBarSuccess.Render(utils.SanitizeLine(r.StatusMsg))
	}

	var hints []string
	for _, h := range r.contextualHints() {
		hints = append(hints, styles.StatusBarKey.Render(h[0])+styles.StatusBarText.Render(":"+h[1]))
	}
	right := strings.Join(hints, styles.StatusBarText.Render(" "))

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := styles.StatusBar.GetHorizontalFrameSize()

	maxLeftWidth := r.Width - rightWidth - padding - 4
	if leftWidth > maxLeftWidth && maxLeftWidth > 10 {
		left = styles.StatusBarSuccess.Render(utils.TruncateString(utils.SanitizeLine(r.StatusMsg), maxLeftWidth))
		leftWidth = lipgloss.Width(left)
	}

	spacing := r.Width - leftWidth - rightWidth - padding
	if spacing < 0 {
		spacing = 0
	}

	return styles.StatusBar.Width(r.Width - padding).Render(left + strings.Repeat(" ", spacing) + right)
}

func (r *Renderer) contextualHints() [][2]string {
	if r.FocusedEditForm() != nil {
		return [][2]string{{"tab", "field"}, {"enter", "save"}, {"esc", "back"}}
	}
	switch r.FocusedPane {
	case state.PaneTranscript:
		return [][2]string{{r.Keymap.Submit.Key, "process"}, {"tab", "tasks"}, {"esc", "leave"}}
	case state.PaneHistory:
		return [][2]string{{"j/k", "move"}, {"yy", "copy"}, {"tab", "pane"}, {"?", "help"}}
	}
	return [][2]string{{"x", "done"}, {"e", "edit"}, {"dd", "delete"}, {"1/2/3", "filter"}, {"?", "help"}, {"q", "quit"}}
}
