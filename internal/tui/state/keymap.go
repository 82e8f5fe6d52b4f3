package state

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// KeymapData contains all key bindings for the board.
type KeymapData struct {
	// Navigation
	Up         Key
	Down       Key
	Top        Key
	Bottom     Key
	SwitchPane Key

	// Actions
	Select  Key
	Back    Key
	Quit    Key
	Help    Key
	Refresh Key

	// Transcript
	Submit Key

	// Task actions
	EditTask     Key
	DeleteTask   Key
	CompleteTask Key
	CopyTask     Key

	// Filters
	FilterAll   Key
	FilterOpen  Key
	FilterDone  Key
	CycleFilter Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() KeymapData {
	return KeymapData{
		Up:         Key{Key: "k", Help: "up"},
		Down:       Key{Key: "j", Help: "down"},
		Top:        Key{Key: "g", Help: "top (gg)"},
		Bottom:     Key{Key: "G", Help: "bottom"},
		SwitchPane: Key{Key: "tab", Help: "switch pane"},

		Select:  Key{Key: "enter", Help: "focus edit form"},
		Back:    Key{Key: "esc", Help: "back"},
		Quit:    Key{Key: "q", Help: "quit"},
		Help:    Key{Key: "?", Help: "help"},
		Refresh: Key{Key: "r", Help: "refresh"},

		Submit: Key{Key: "ctrl+s", Help: "process transcript"},

		EditTask:     Key{Key: "e", Help: "edit task"},
		DeleteTask:   Key{Key: "d", Help: "delete (dd)"},
		CompleteTask: Key{Key: "x", Help: "mark done/reopen"},
		CopyTask:     Key{Key: "y", Help: "copy (yy)"},

		FilterAll:   Key{Key: "1", Help: "all tasks"},
		FilterOpen:  Key{Key: "2", Help: "open tasks"},
		FilterDone:  Key{Key: "3", Help: "done tasks"},
		CycleFilter: Key{Key: "f", Help: "cycle filter"},
	}
}

// KeyState tracks multi-key sequences (like 'gg' or 'dd' or 'yy').
type KeyState struct {
	WaitingG bool // Waiting for second 'g' in 'gg'
	WaitingD bool // Waiting for second 'd' in 'dd'
	WaitingY bool // Waiting for second 'y' in 'yy'
}

// HandleKey processes a key press in the task list and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, keymap KeymapData) (string, bool) {
	key := msg.String()

	if ks.WaitingG {
		ks.WaitingG = false
		if key == keymap.Top.Key {
			return "top", true
		}
	}

	if ks.WaitingD {
		ks.WaitingD = false
		if key == keymap.DeleteTask.Key {
			return "delete", true
		}
	}

	if ks.WaitingY {
		ks.WaitingY = false
		if key == keymap.CopyTask.Key {
			return "copy", true
		}
	}

	switch key {
	case keymap.Top.Key:
		ks.WaitingG = true
		return "", true
	case keymap.DeleteTask.Key:
		ks.WaitingD = true
		return "", true
	case keymap.CopyTask.Key:
		ks.WaitingY = true
		return "", true
	}

	switch key {
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Bottom.Key:
		return "bottom", true
	case keymap.Select.Key:
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key:
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Refresh.Key:
		return "refresh", true
	case keymap.EditTask.Key:
		return "edit", true
	case keymap.CompleteTask.Key, " ":
		return "complete", true
	case keymap.SwitchPane.Key:
		return "switch_pane", true
	case "shift+tab":
		return "switch_pane_back", true
	case keymap.FilterAll.Key:
		return "filter_all", true
	case keymap.FilterOpen.Key:
		return "filter_open", true
	case keymap.FilterDone.Key:
		return "filter_done", true
	case keymap.CycleFilter.Key:
		return "cycle_filter", true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.WaitingD = false
	ks.WaitingY = false
}

// HelpItems returns a slice of key-description pairs for the help view.
func (k KeymapData) HelpItems() [][]string {
	return [][]string{
		{"Navigation", ""},
		{k.Up.Key + "/" + k.Down.Key, "Move up/down"},
		{"gg/" + k.Bottom.Key, "Go to top/bottom"},
		{k.SwitchPane.Key + "/shift+tab", "Switch pane (Transcript/Tasks/History)"},
		{"", ""},
		{"Transcript", ""},
		{k.Submit.Key, "Process transcript"},
		{k.Back.Key, "Leave the transcript box"},
		{"", ""},
		{"Task Actions", ""},
		{k.CompleteTask.Key + "/space", "Mark done / reopen"},
		{k.EditTask.Key, "Open/close the edit form"},
		{k.Select.Key, "Focus an open edit form"},
		{"dd", "Delete task (asks first)"},
		{"yy", "Copy task text to clipboard"},
		{"", ""},
		{"Edit Form", ""},
		{"tab/shift+tab", "Next/previous field"},
		{"enter", "Save"},
		{k.Back.Key, "Back to the list (form stays open)"},
		{"", ""},
		{"Filters", ""},
		{k.FilterAll.Key + "/" + k.FilterOpen.Key + "/" + k.FilterDone.Key, "All / Open / Done"},
		{k.CycleFilter.Key, "Cycle filter"},
		{"", ""},
		{"General", ""},
		{k.Refresh.Key, "Reload tasks and history"},
		{k.Help.Key, "Toggle help"},
		{k.Quit.Key + "/ctrl+c", "Quit"},
	}
}
