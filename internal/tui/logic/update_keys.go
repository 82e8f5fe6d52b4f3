package logic

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/tui/state"
)

// handleKeyMsg routes a key press to the dialog, form or pane that owns it.
func (h *Handler) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	// Blocking dialogs swallow the key that dismisses them.
	if h.Alert != "" {
		h.Alert = ""
		return nil
	}
	if h.Confirm != nil {
		return h.handleConfirmDeleteKeyMsg(msg)
	}

	if h.CurrentView == state.ViewHelp {
		switch msg.String() {
		case h.Keymap.Help.Key, h.Keymap.Back.Key, h.Keymap.Quit.Key:
			h.CurrentView = state.ViewBoard
		}
		return nil
	}

	if form := h.FocusedEditForm(); form != nil {
		return h.handleEditFormKeyMsg(form, msg)
	}

	switch h.FocusedPane {
	case state.PaneTranscript:
		return h.handleTranscriptKeyMsg(msg)
	case state.PaneHistory:
		return h.handleHistoryKeyMsg(msg)
	default:
		return h.handleTasksKeyMsg(msg)
	}
}

// handleTranscriptKeyMsg handles keys while the transcript box has focus.
// Everything not bound here is typed into the textarea.
func (h *Handler) handleTranscriptKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case h.Keymap.Submit.Key:
		return h.handleSubmit()
	case h.Keymap.SwitchPane.Key:
		h.FocusPane(h.FocusedPane.Next())
		return nil
	case "shift+tab":
		h.FocusPane(h.FocusedPane.Prev())
		return nil
	case h.Keymap.Back.Key:
		h.FocusPane(state.PaneTasks)
		return nil
	}

	var cmd tea.Cmd
	h.TranscriptInput, cmd = h.TranscriptInput.Update(msg)
	return cmd
}

// handleTasksKeyMsg handles keys while the task list has focus.
func (h *Handler) handleTasksKeyMsg(msg tea.KeyMsg) tea.Cmd {
	action, ok := h.KeyState.HandleKey(msg, h.Keymap)
	if !ok || action == "" {
		return nil
	}

	if cmd, handled := h.handleCommonAction(action); handled {
		return cmd
	}

	visible := len(h.VisibleTasks())
	switch action {
	case "up":
		if h.TaskCursor > 0 {
			h.TaskCursor--
		}
	case "down":
		if h.TaskCursor < visible-1 {
			h.TaskCursor++
		}
	case "top":
		h.TaskCursor = 0
	case "bottom":
		if visible > 0 {
			h.TaskCursor = visible - 1
		}
	case "select":
		return h.handleFocusEdit()
	case "edit":
		return h.handleToggleEdit()
	case "complete":
		return h.handleToggleStatus()
	case "delete":
		return h.handleDelete()
	case "copy":
		return h.handleCopy()
	case "filter_all":
		h.SetFilter(state.FilterAll)
	case "filter_open":
		h.SetFilter(state.FilterOpen)
	case "filter_done":
		h.SetFilter(state.FilterDone)
	case "cycle_filter":
		h.SetFilter(h.Filter.Next())
	}
	return nil
}

// handleHistoryKeyMsg handles keys while the history pane has focus.
func (h *Handler) handleHistoryKeyMsg(msg tea.KeyMsg) tea.Cmd {
	action, ok := h.KeyState.HandleKey(msg, h.Keymap)
	if !ok || action == "" {
		return nil
	}

	if cmd, handled := h.handleCommonAction(action); handled {
		return cmd
	}

	switch action {
	case "up":
		if h.HistoryCursor > 0 {
			h.HistoryCursor--
		}
	case "down":
		if h.HistoryCursor < len(h.Transcripts)-1 {
			h.HistoryCursor++
		}
	case "top":
		h.HistoryCursor = 0
	case "bottom":
		h.HistoryCursor = len(h.Transcripts) - 1
		h.ClampHistoryCursor()
	case "copy":
		if h.HistoryCursor < len(h.Transcripts) {
			return copyText(h.Transcripts[h.HistoryCursor].Text, "transcript")
		}
	}
	return nil
}

// handleCommonAction handles actions shared by the list panes.
func (h *Handler) handleCommonAction(action string) (tea.Cmd, bool) {
	switch action {
	case "quit":
		return tea.Quit, true
	case "help":
		h.CurrentView = state.ViewHelp
		return nil, true
	case "refresh":
		return h.handleRefresh(), true
	case "switch_pane":
		h.FocusPane(h.FocusedPane.Next())
		return nil, true
	case "switch_pane_back":
		h.FocusPane(h.FocusedPane.Prev())
		return nil, true
	case "back":
		h.KeyState.Reset()
		h.StatusMsg = ""
		return nil, true
	}
	return nil, false
}

// handleRefresh reloads tasks and history from the server.
func (h *Handler) handleRefresh() tea.Cmd {
	h.StatusMsg = "Refreshing..."
	return tea.Batch(h.loadTasks(), h.loadHistory(), h.loadHealth())
}

// handleConfirmDeleteKeyMsg handles the answer to the delete confirmation.
// Only y confirms; any other key declines.
func (h *Handler) handleConfirmDeleteKeyMsg(msg tea.KeyMsg) tea.Cmd {
	pending := h.Confirm
	h.Confirm = nil

	switch msg.String() {
	case "y", "Y":
		id := pending.TaskID
		client := h.Client
		return func() tea.Msg {
			if err := client.DeleteTask(id); err != nil {
				return taskActionFailedMsg{id: id, action: actionDelete, err: err}
			}
			return taskDeletedMsg{id: id}
		}
	default:
		return nil
	}
}
