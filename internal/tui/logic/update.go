package logic

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// Handler turns key events and network completions into state changes and commands.
type Handler struct {
	*state.State
}

func NewHandler(s *state.State) *Handler {
	return &Handler{State: s}
}

// Update applies msg to the state and returns the follow-up command, if any.
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return h.handleWindowSizeMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		h.Spinner, cmd = h.Spinner.Update(msg)
		return cmd

	case statusMsg:
		h.StatusMsg = msg.msg
		return nil

	case tasksLoadedMsg:
		h.SetTasks(msg.tasks)
		return nil

	case tasksFailedMsg:
		// Prior snapshot stays visible under the error line.
		h.TasksErr = msg.err
		logf("Error loading tasks: %v", msg.err)
		return nil

	case historyLoadedMsg:
		h.Transcripts = msg.transcripts
		h.HistoryLoaded = true
		h.HistoryErr = nil
		h.ClampHistoryCursor()
		return nil

	case historyFailedMsg:
		h.HistoryErr = msg.err
		logf("Error loading history: %v", msg.err)
		return nil

	case healthMsg:
		h.Health = msg.status
		h.HealthErr = msg.err
		if msg.err != nil {
			logf("Health check failed: %v", msg.err)
		}
		return nil

	case transcriptProcessedMsg:
		return h.handleTranscriptProcessed(msg)

	case transcriptFailedMsg:
		return h.handleTranscriptFailed(msg)

	case hideResultMsg:
		if h.Result != nil && h.Result.Seq == msg.seq {
			h.Result = nil
		}
		return nil

	case taskEditedMsg:
		delete(h.EditForms, msg.id)
		if h.FocusedEditID == msg.id {
			h.EditFocused = false
		}
		h.StatusMsg = "Task updated"
		return h.loadTasks()

	case taskStatusChangedMsg:
		if msg.status == api.StatusDone {
			h.StatusMsg = "Marked done"
		} else {
			h.StatusMsg = "Reopened"
		}
		return h.loadTasks()

	case taskDeletedMsg:
		h.StatusMsg = "Task deleted"
		return h.loadTasks()

	case taskActionFailedMsg:
		if form, ok := h.EditForms[msg.id]; ok {
			form.Saving = false
		}
		h.Alert = msg.action.alertText()
		logf("Task %d action failed: %v", msg.id, msg.err)
		// The task is gone on the server, so the card is stale
		if apiErr, ok := api.IsAPIError(msg.err); ok && apiErr.IsNotFound() {
			return h.loadTasks()
		}
		return nil
	}

	// Forward non-key messages (like blink) to active inputs
	if form := h.FocusedEditForm(); form != nil {
		return form.Update(msg)
	}
	if h.FocusedPane == state.PaneTranscript {
		var cmd tea.Cmd
		h.TranscriptInput, cmd = h.TranscriptInput.Update(msg)
		return cmd
	}

	return nil
}

func (h *Handler) handleWindowSizeMsg(msg tea.WindowSizeMsg) tea.Cmd {
	h.Width = msg.Width
	h.Height = msg.Height

	inputWidth := msg.Width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	h.TranscriptInput.SetWidth(inputWidth)

	return nil
}

// hideResultAfter schedules the success message to disappear.
// The sequence number keeps an old timer from hiding a newer message.
func (h *Handler) hideResultAfter(seq int) tea.Cmd {
	if h.ResultTTL <= 0 {
		return nil
	}
	return tea.Tick(h.ResultTTL, func(time.Time) tea.Msg {
		return hideResultMsg{seq: seq}
	})
}

// errorText picks the user-facing text for a failed request.
func errorText(err error, fallback string) string {
	return utils.ErrorText(err, fallback)
}
