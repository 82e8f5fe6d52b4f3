package logic

import (
	"io"
	"log"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
)

// Debug logger. Nil unless SetDebugLog is called.
var debugLog *log.Logger

// SetDebugLog enables diagnostic logging to w. A nil writer disables it.
func SetDebugLog(w io.Writer) {
	if w == nil {
		debugLog = nil
		return
	}
	debugLog = log.New(w, "BOARD: ", log.Ltime|log.Lshortfile)
}

func logf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// Replaced in tests.
var (
	notify = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}
	writeClipboard = clipboard.WriteAll
)

// notifyExtracted sends a desktop notification after a successful extraction.
func (h *Handler) notifyExtracted(text string) tea.Cmd {
	if !h.Notifications {
		return nil
	}
	return func() tea.Msg {
		if err := notify("Action Items", text); err != nil {
			logf("Failed to send notification: %v", err)
		}
		return nil
	}
}

// copyText writes text to the system clipboard and reports the outcome in the status bar.
func copyText(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg{msg: "Failed to copy: " + err.Error()}
		}
		return statusMsg{msg: "Copied " + what}
	}
}
