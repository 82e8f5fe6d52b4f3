package state

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// Edit form field indexes for focus management.
const (
	EditFieldTask = iota
	EditFieldOwner
	EditFieldDue
)

const editFieldCount = 3

// DateLayout is the due date format the backend stores.
const DateLayout = "2006-01-02"

var (
	// ErrEmptyDescription is returned when the task text is blank after trimming.
	ErrEmptyDescription = errors.New("task description cannot be empty")

	// ErrInvalidDueDate is returned when the due date is not YYYY-MM-DD.
	ErrInvalidDueDate = errors.New("due date must be in YYYY-MM-DD format")
)

// ValidationMessage returns the text shown to the user for an edit validation error.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyDescription):
		return "Task description cannot be empty"
	case errors.Is(err, ErrInvalidDueDate):
		return "Due date must be in YYYY-MM-DD format"
	}
	return err.Error()
}

// EditForm is the inline edit session for one task card.
type EditForm struct {
	TaskID  int
	Task    textinput.Model
	Owner   textinput.Model
	DueDate textinput.Model

	FocusIndex int
	Saving     bool
}

// NewEditForm creates an edit form pre-populated from t.
// Values are sanitized since the inputs echo them to the terminal.
func NewEditForm(t api.Task) *EditForm {
	task := textinput.New()
	task.Placeholder = "Task description"
	task.CharLimit = 0
	task.Width = 50
	task.SetValue(utils.SanitizeLine(t.Task))

	owner := textinput.New()
	owner.Placeholder = "Owner"
	owner.CharLimit = 255
	owner.Width = 30
	owner.SetValue(utils.SanitizeLine(t.OwnerName()))

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 50
	due.Width = 12
	due.SetValue(utils.SanitizeLine(t.Due()))

	f := &EditForm{
		TaskID:  t.ID,
		Task:    task,
		Owner:   owner,
		DueDate: due,
	}
	f.Focus(EditFieldTask)
	return f
}

// Update routes key and blink messages to the focused input.
func (f *EditForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return nil
		case "shift+tab", "up":
			f.PrevField()
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusIndex {
	case EditFieldTask:
		f.Task, cmd = f.Task.Update(msg)
	case EditFieldOwner:
		f.Owner, cmd = f.Owner.Update(msg)
	case EditFieldDue:
		f.DueDate, cmd = f.DueDate.Update(msg)
	}
	return cmd
}

// NextField moves focus to the next field.
func (f *EditForm) NextField() {
	f.Focus((f.FocusIndex + 1) % editFieldCount)
}

// PrevField moves focus to the previous field.
func (f *EditForm) PrevField() {
	f.Focus((f.FocusIndex - 1 + editFieldCount) % editFieldCount)
}

// Focus focuses the field at index.
func (f *EditForm) Focus(index int) {
	f.FocusIndex = index
	f.Task.Blur()
	f.Owner.Blur()
	f.DueDate.Blur()

	switch index {
	case EditFieldTask:
		f.Task.Focus()
	case EditFieldOwner:
		f.Owner.Focus()
	case EditFieldDue:
		f.DueDate.Focus()
	}
}

// Blur removes focus from every field without touching their values.
func (f *EditForm) Blur() {
	f.Task.Blur()
	f.Owner.Blur()
	f.DueDate.Blur()
}

// ToRequest validates the form and builds the PATCH body.
// Blank owner or due date become nil so they are sent as null.
func (f *EditForm) ToRequest() (api.EditTaskRequest, error) {
	return BuildEditRequest(f.Task.Value(), f.Owner.Value(), f.DueDate.Value())
}

// BuildEditRequest applies the inline edit rules to raw field values.
func BuildEditRequest(task, owner, due string) (api.EditTaskRequest, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return api.EditTaskRequest{}, ErrEmptyDescription
	}

	req := api.EditTaskRequest{Task: task}

	if owner = strings.TrimSpace(owner); owner != "" {
		req.Owner = &owner
	}

	if due = strings.TrimSpace(due); due != "" {
		if _, err := time.Parse(DateLayout, due); err != nil {
			return api.EditTaskRequest{}, ErrInvalidDueDate
		}
		req.DueDate = &due
	}

	return req, nil
}
