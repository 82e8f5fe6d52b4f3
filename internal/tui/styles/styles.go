// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}

	barBackground = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}
)

// Base styles
var (
	// Title is the style for the application title
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for pane headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	// EmptyState is for "nothing here" placeholders
	EmptyState = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)
)

// Pane styles
var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	PaneFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)

// Task card styles
var (
	// TaskCard is the base style for a task card
	TaskCard = lipgloss.NewStyle().
			PaddingLeft(2)

	// TaskCardSelected is the style for the card under the cursor
	TaskCardSelected = lipgloss.NewStyle().
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeftForeground(Highlight)

	// TaskText is for the action item itself
	TaskText = lipgloss.NewStyle().Bold(true)

	// TaskTextDone is the done styling for completed items
	TaskTextDone = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// TaskMeta is for owner and due date
	TaskMeta = lipgloss.NewStyle().
			Foreground(Subtle)

	// TaskAction is for the per-card action hints
	TaskAction = lipgloss.NewStyle().
			Foreground(Highlight)

	// TaskActionComplete highlights "Mark done"
	TaskActionComplete = lipgloss.NewStyle().
				Foreground(SuccessColor)

	// TaskActionDelete highlights "Delete"
	TaskActionDelete = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// Checkbox styles
var (
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)

// Filter bar styles
var (
	// Filter is for inactive filter controls
	Filter = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(Subtle)

	// FilterActive is for the active filter control
	FilterActive = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Highlight)
)

// History styles
var (
	HistoryMeta = lipgloss.NewStyle().
			Foreground(Subtle)

	HistoryCount = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	HistoryText = lipgloss.NewStyle()
)

// Result message styles
var (
	ResultSuccess = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ResultError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// StatusBar styles
var (
	// StatusBar is the base style for the status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(barBackground).
			Padding(0, 1)

	// StatusBarKey is for keyboard shortcut hints
	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(barBackground)

	// StatusBarText is for status bar descriptions
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(barBackground)

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(barBackground).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(barBackground).
				Bold(true)
)

// Health indicator styles
var (
	HealthOK = lipgloss.NewStyle().
			Foreground(SuccessColor)

	HealthDegraded = lipgloss.NewStyle().
			Foreground(WarningColor)

	HealthDown = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// Input styles
var (
	// InputLabel is for input labels
	InputLabel = lipgloss.NewStyle().
			Bold(true)

	// EditForm frames an open inline edit form
	EditForm = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Subtle).
			Padding(0, 1).
			MarginLeft(4)

	// EditFormFocused frames the edit form that has keyboard focus
	EditFormFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Highlight).
			Padding(0, 1).
			MarginLeft(4)
)

// Dialog styles
var (
	// Dialog is the base style for dialog boxes
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	// DialogError is for blocking error alerts
	DialogError = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// DialogTitle is for dialog titles
	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)
)

// Spinner style
var (
	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// SectionHeader is for help section titles
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(Highlight)
