package logic

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/tui/state"
)

// handleToggleEdit opens or closes the edit form of the selected task.
func (h *Handler) handleToggleEdit() tea.Cmd {
	task := h.SelectedTask()
	if task == nil {
		return nil
	}

	if _, open := h.EditForms[task.ID]; open {
		delete(h.EditForms, task.ID)
		if h.FocusedEditID == task.ID {
			h.EditFocused = false
		}
		return nil
	}

	return h.openEditForm(*task)
}

// handleFocusEdit moves focus into the selected task's form, opening it if needed.
func (h *Handler) handleFocusEdit() tea.Cmd {
	task := h.SelectedTask()
	if task == nil {
		return nil
	}

	form, open := h.EditForms[task.ID]
	if !open {
		return h.openEditForm(*task)
	}

	form.Focus(form.FocusIndex)
	h.FocusedEditID = task.ID
	h.EditFocused = true
	h.KeyState.Reset()
	return textinput.Blink
}

func (h *Handler) openEditForm(task api.Task) tea.Cmd {
	h.EditForms[task.ID] = state.NewEditForm(task)
	h.FocusedEditID = task.ID
	h.EditFocused = true
	h.KeyState.Reset()
	return textinput.Blink
}

// handleEditFormKeyMsg handles keys while an edit form has focus.
func (h *Handler) handleEditFormKeyMsg(form *state.EditForm, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return h.saveEdit(form)
	case h.Keymap.Back.Key:
		// Form stays open with its values; only focus leaves it.
		form.Blur()
		h.EditFocused = false
		return nil
	}
	return form.Update(msg)
}

// saveEdit validates the form locally and sends the PATCH.
// Validation failures raise an alert and send nothing.
func (h *Handler) saveEdit(form *state.EditForm) tea.Cmd {
	if form.Saving {
		return nil
	}

	req, err := form.ToRequest()
	if err != nil {
		h.Alert = state.ValidationMessage(err)
		return nil
	}

	form.Saving = true
	id := form.TaskID
	client := h.Client
	return func() tea.Msg {
		if _, err := client.EditTask(id, req); err != nil {
			return taskActionFailedMsg{id: id, action: actionEdit, err: err}
		}
		return taskEditedMsg{id: id}
	}
}

// handleToggleStatus marks an open task done or reopens a done one.
// The list is only updated by the reload that follows a successful PATCH.
func (h *Handler) handleToggleStatus() tea.Cmd {
	task := h.SelectedTask()
	if task == nil {
		return nil
	}

	id := task.ID
	target := task.Status.Toggled()
	client := h.Client
	return func() tea.Msg {
		if _, err := client.SetTaskStatus(id, target); err != nil {
			return taskActionFailedMsg{id: id, action: actionStatus, err: err}
		}
		return taskStatusChangedMsg{id: id, status: target}
	}
}

// handleDelete asks for confirmation before deleting the selected task.
func (h *Handler) handleDelete() tea.Cmd {
	task := h.SelectedTask()
	if task == nil {
		return nil
	}

	h.Confirm = &state.ConfirmDelete{TaskID: task.ID, Text: task.Task}
	return nil
}

// handleCopy copies the selected task text to the clipboard.
func (h *Handler) handleCopy() tea.Cmd {
	task := h.SelectedTask()
	if task == nil {
		return nil
	}
	return copyText(task.Task, "task")
}
