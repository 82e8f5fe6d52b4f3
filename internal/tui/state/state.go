package state

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/config"
	"github.com/hy4ri/actionboard/internal/tui/styles"
)

// View represents the current screen.
type View int

const (
	ViewBoard View = iota
	ViewHelp
)

// Pane represents which pane has keyboard focus.
type Pane int

const (
	PaneTranscript Pane = iota
	PaneTasks
	PaneHistory
)

const paneCount = 3

// Next returns the pane after p, wrapping around.
func (p Pane) Next() Pane {
	return (p + 1) % paneCount
}

// Prev returns the pane before p, wrapping around.
func (p Pane) Prev() Pane {
	return (p - 1 + paneCount) % paneCount
}

// Filter selects which tasks of the snapshot are shown.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterOpen Filter = "open"
	FilterDone Filter = "done"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterOpen, FilterDone}

// ParseFilter converts a filter name into a Filter.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q: must be all, open or done", s)
}

// Matches reports whether t is shown under f.
func (f Filter) Matches(t api.Task) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return string(t.Status) == string(f)
}

// Next returns the following filter, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label is the control text for f.
func (f Filter) Label() string {
	switch f {
	case FilterOpen:
		return "Open"
	case FilterDone:
		return "Done"
	}
	return "All"
}

// ResultKind distinguishes success and error messages under the transcript box.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultError
)

// Result is the inline message shown after a transcript submission.
type Result struct {
	Kind ResultKind
	Text string
	Seq  int // identifies this message so a stale hide timer can't clear a newer one
}

// ConfirmDelete holds a delete awaiting user confirmation.
type ConfirmDelete struct {
	TaskID int
	Text   string
}

// State holds the application state.
// All fields are exported to allow access from logic and ui packages.
type State struct {
	// Dependencies
	Client *api.Client
	Config *config.Config

	// View state
	CurrentView View
	FocusedPane Pane

	// Data. AllTasks is always the last successful GET /api/tasks, verbatim.
	Filter        Filter
	AllTasks      []api.Task
	TasksLoaded   bool
	TasksErr      error
	Transcripts   []api.Transcript
	HistoryLoaded bool
	HistoryErr    error
	Health        *api.StatusResponse
	HealthErr     error

	// List state
	TaskCursor    int
	HistoryCursor int

	// Transcript form
	TranscriptInput textarea.Model
	Submitting      bool
	Result          *Result
	ResultSeq       int

	// Blocking dialogs
	Alert   string
	Confirm *ConfirmDelete

	// Inline edit sessions keyed by task id
	EditForms     map[int]*EditForm
	FocusedEditID int
	EditFocused   bool

	// UI state
	StatusMsg string
	Width     int
	Height    int

	// Components
	Spinner  spinner.Model
	Keymap   KeymapData
	KeyState *KeyState

	// Settings
	HistoryLimit  int
	ResultTTL     time.Duration
	Notifications bool

	// Now is the clock used for relative timestamps.
	Now func() time.Time
}

// NewState creates the initial state for a session.
func NewState(client *api.Client, cfg *config.Config) *State {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	input := textarea.New()
	input.Placeholder = "Paste a meeting transcript..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetHeight(6)
	input.Focus()

	return &State{
		Client:          client,
		Config:          cfg,
		CurrentView:     ViewBoard,
		FocusedPane:     PaneTranscript,
		Filter:          FilterAll,
		TranscriptInput: input,
		EditForms:       make(map[int]*EditForm),
		Spinner:         s,
		Keymap:          DefaultKeymap(),
		KeyState:        &KeyState{},
		HistoryLimit:    cfg.UI.HistoryLimit,
		ResultTTL:       cfg.ResultDuration(),
		Notifications:   cfg.UI.Notifications,
		Now:             time.Now,
	}
}

// VisibleTasks returns the snapshot filtered by the current filter, in server order.
func (s *State) VisibleTasks() []api.Task {
	if s.Filter == FilterAll || s.Filter == "" {
		return s.AllTasks
	}
	visible := make([]api.Task, 0, len(s.AllTasks))
	for _, t := range s.AllTasks {
		if s.Filter.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// SelectedTask returns the task under the cursor, or nil.
func (s *State) SelectedTask() *api.Task {
	visible := s.VisibleTasks()
	if s.TaskCursor < 0 || s.TaskCursor >= len(visible) {
		return nil
	}
	t := visible[s.TaskCursor]
	return &t
}

// FindTask returns the snapshot entry with the given id.
func (s *State) FindTask(id int) (api.Task, bool) {
	for _, t := range s.AllTasks {
		if t.ID == id {
			return t, true
		}
	}
	return api.Task{}, false
}

// SetTasks replaces the snapshot wholesale.
// Edit forms for tasks that no longer exist are dropped; the rest keep their values.
func (s *State) SetTasks(tasks []api.Task) {
	if tasks == nil {
		tasks = []api.Task{}
	}
	s.AllTasks = tasks
	s.TasksLoaded = true
	s.TasksErr = nil

	for id := range s.EditForms {
		if _, ok := s.FindTask(id); !ok {
			delete(s.EditForms, id)
		}
	}
	if s.EditFocused {
		if _, ok := s.EditForms[s.FocusedEditID]; !ok {
			s.EditFocused = false
		}
	}

	s.ClampCursor()
}

// SetFilter changes the filter. The snapshot is untouched.
func (s *State) SetFilter(f Filter) {
	s.Filter = f
	s.ClampCursor()
}

// ClampCursor keeps the cursor inside the visible list.
func (s *State) ClampCursor() {
	n := len(s.VisibleTasks())
	if s.TaskCursor >= n {
		s.TaskCursor = n - 1
	}
	if s.TaskCursor < 0 {
		s.TaskCursor = 0
	}
}

// ClampHistoryCursor keeps the history cursor inside the loaded transcripts.
func (s *State) ClampHistoryCursor() {
	if s.HistoryCursor >= len(s.Transcripts) {
		s.HistoryCursor = len(s.Transcripts) - 1
	}
	if s.HistoryCursor < 0 {
		s.HistoryCursor = 0
	}
}

// SetResult shows a transcript result message and returns its sequence number.
func (s *State) SetResult(kind ResultKind, text string) int {
	s.ResultSeq++
	s.Result = &Result{Kind: kind, Text: text, Seq: s.ResultSeq}
	return s.ResultSeq
}

// FocusPane moves keyboard focus, keeping the textarea focus in sync.
func (s *State) FocusPane(p Pane) {
	s.FocusedPane = p
	s.EditFocused = false
	if p == PaneTranscript {
		s.TranscriptInput.Focus()
	} else {
		s.TranscriptInput.Blur()
	}
	if s.KeyState != nil {
		s.KeyState.Reset()
	}
}

// FocusedEditForm returns the edit form with keyboard focus, or nil.
func (s *State) FocusedEditForm() *EditForm {
	if !s.EditFocused {
		return nil
	}
	return s.EditForms[s.FocusedEditID]
}
