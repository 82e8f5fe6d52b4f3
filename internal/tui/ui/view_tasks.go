package ui

import (
	"fmt"
	"strings"

	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/styles"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// renderTasksPane renders the filter bar and the filtered task cards.
func (r *Renderer) renderTasksPane(width, height int) string {
	inner := width - styles.Pane.GetHorizontalFrameSize()
	visible := r.VisibleTasks()

	var b strings.Builder
	b.WriteString(r.renderFilterBar())
	b.WriteString("\n")

	if r.TasksErr != nil {
		b.WriteString(styles.ResultError.Render("Error loading tasks. Press r to refresh."))
		b.WriteString("\n")
	}

	switch {
	case !r.TasksLoaded && r.TasksErr == nil:
		b.WriteString(r.Spinner.View() + " Loading tasks...")
	case len(visible) == 0 && r.TasksLoaded:
		b.WriteString(styles.EmptyState.Render(emptyTasksMessage(r.Filter)))
	default:
		cards := make([]string, 0, len(visible))
		for i, t := range visible {
			cards = append(cards, r.renderTaskCard(t, i == r.TaskCursor, inner))
		}
		// Title, filter bar and frame
		used := 4
		if r.TasksErr != nil {
			used++
		}
		b.WriteString(strings.Join(window(cards, r.TaskCursor, height-used), "\n"))
	}

	title := fmt.Sprintf("Action Items (%d)", len(visible))
	return r.pane(state.PaneTasks, title, width, b.String())
}

func emptyTasksMessage(f state.Filter) string {
	switch f {
	case state.FilterOpen:
		return "No open tasks."
	case state.FilterDone:
		return "No done tasks."
	}
	return "No action items yet. Process a transcript to get started."
}

// renderFilterBar renders the filter controls with the active one highlighted.
func (r *Renderer) renderFilterBar() string {
	keys := []string{r.Keymap.FilterAll.Key, r.Keymap.FilterOpen.Key, r.Keymap.FilterDone.Key}
	parts := make([]string, 0, len(state.Filters))
	for i, f := range state.Filters {
		label := keys[i] + " " + f.Label()
		if f == r.Filter {
			parts = append(parts, styles.FilterActive.Render(label))
		} else {
			parts = append(parts, styles.Filter.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderTaskCard renders one task with its actions and, when open, its edit form.
// Every server-provided field goes through SanitizeLine.
func (r *Renderer) renderTaskCard(t api.Task, selected bool, width int) string {
	checkbox := styles.CheckboxUnchecked
	textStyle := styles.TaskText
	if t.IsDone() {
		checkbox = styles.CheckboxChecked
		textStyle = styles.TaskTextDone
	}

	textWidth := width - 6
	if textWidth < 10 {
		textWidth = 10
	}
	lines := []string{checkbox + " " + textStyle.Render(utils.TruncateString(utils.SanitizeLine(t.Task), textWidth))}

	var meta []string
	if owner := t.OwnerName(); owner != "" {
		meta = append(meta, "Owner: "+utils.SanitizeLine(owner))
	}
	if due := t.Due(); due != "" {
		meta = append(meta, "Due: "+utils.SanitizeLine(due))
	}
	if len(meta) > 0 {
		lines = append(lines, "    "+styles.TaskMeta.Render(strings.Join(meta, "  ")))
	}

	lines = append(lines, "    "+r.renderTaskActions(t))

	if form, ok := r.EditForms[t.ID]; ok {
		lines = append(lines, r.renderEditForm(form))
	}

	style := styles.TaskCard
	if selected && r.FocusedPane == state.PaneTasks {
		style = styles.TaskCardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderTaskActions(t api.Task) string {
	status := styles.TaskActionComplete.Render("Mark done")
	if t.IsDone() {
		status = styles.TaskAction.Render("Reopen")
	}
	return status + "  " + styles.TaskAction.Render("Edit") + "  " + styles.TaskActionDelete.Render("Delete")
}

// renderEditForm renders an open inline edit form.
func (r *Renderer) renderEditForm(form *state.EditForm) string {
	style := styles.EditForm
	if r.EditFocused && r.FocusedEditID == form.TaskID {
		style = styles.EditFormFocused
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Task Description") + "\n")
	b.WriteString(form.Task.View() + "\n")
	b.WriteString(styles.InputLabel.Render("Owner") + "\n")
	b.WriteString(form.Owner.View() + "\n")
	b.WriteString(styles.InputLabel.Render("Due Date") + "\n")
	b.WriteString(form.DueDate.View() + "\n")

	switch {
	case form.Saving:
		b.WriteString(r.Spinner.View() + " Saving...")
	case r.EditFocused && r.FocusedEditID == form.TaskID:
		// e types into the focused field, so it is only offered from the list
		b.WriteString(styles.HelpDesc.Render("enter: save  tab: next field  esc: back"))
	default:
		b.WriteString(styles.HelpDesc.Render("enter: edit  e: cancel"))
	}

	return style.Render(b.String())
}
