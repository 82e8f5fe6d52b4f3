package logic

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
)

// Init implements tea.Model.
func (h *Handler) Init() tea.Cmd {
	return tea.Batch(
		h.Spinner.Tick,
		h.LoadInitialData(),
	)
}

// LoadInitialData fetches tasks, history and backend health concurrently.
// Each fetch reports back on its own so one failure never blocks the others.
func (h *Handler) LoadInitialData() tea.Cmd {
	return tea.Batch(
		h.loadTasks(),
		h.loadHistory(),
		h.loadHealth(),
	)
}

// loadTasks fetches the full, unfiltered task list.
func (h *Handler) loadTasks() tea.Cmd {
	client := h.Client
	return func() tea.Msg {
		tasks, err := client.GetTasks("")
		if err != nil {
			return tasksFailedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// loadHistory fetches the most recent transcripts.
func (h *Handler) loadHistory() tea.Cmd {
	client := h.Client
	limit := h.HistoryLimit
	return func() tea.Msg {
		transcripts, err := client.GetTranscripts(limit)
		if err != nil {
			return historyFailedMsg{err: err}
		}
		return historyLoadedMsg{transcripts: transcripts}
	}
}

// loadHealth queries GET /status.
func (h *Handler) loadHealth() tea.Cmd {
	client := h.Client
	return func() tea.Msg {
		status, err := client.GetStatus()
		return healthMsg{status: status, err: err}
	}
}

// Message types
type statusMsg struct{ msg string }
type tasksLoadedMsg struct{ tasks []api.Task }
type tasksFailedMsg struct{ err error }
type historyLoadedMsg struct{ transcripts []api.Transcript }
type historyFailedMsg struct{ err error }
type healthMsg struct {
	status *api.StatusResponse
	err    error
}
type transcriptProcessedMsg struct{ resp *api.ProcessTranscriptResponse }
type transcriptFailedMsg struct{ err error }
type taskEditedMsg struct{ id int }
type taskStatusChangedMsg struct {
	id     int
	status api.TaskStatus
}
type taskDeletedMsg struct{ id int }
type taskActionFailedMsg struct {
	id     int
	action taskAction
	err    error
}
type hideResultMsg struct{ seq int }

// taskAction names a mutation for failure reporting.
type taskAction int

const (
	actionEdit taskAction = iota
	actionStatus
	actionDelete
)

// alertText is the blocking message shown when a mutation fails.
func (a taskAction) alertText() string {
	if a == actionDelete {
		return "Error: Failed to delete task"
	}
	return "Error: Failed to update task"
}
