package logic

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// handleSubmit sends the transcript for extraction.
func (h *Handler) handleSubmit() tea.Cmd {
	if h.Submitting {
		return nil
	}

	text := strings.TrimSpace(h.TranscriptInput.Value())
	if text == "" {
		h.SetResult(state.ResultError, "Please enter a transcript")
		return nil
	}

	h.Submitting = true
	h.Result = nil

	client := h.Client
	return func() tea.Msg {
		resp, err := client.ProcessTranscript(text)
		if err != nil {
			return transcriptFailedMsg{err: err}
		}
		return transcriptProcessedMsg{resp: resp}
	}
}

func (h *Handler) handleTranscriptProcessed(msg transcriptProcessedMsg) tea.Cmd {
	h.Submitting = false
	h.TranscriptInput.Reset()

	text := utils.ExtractedMessage(len(msg.resp.Tasks))
	seq := h.SetResult(state.ResultSuccess, text)

	return tea.Batch(
		h.notifyExtracted(text),
		h.loadTasks(),
		h.loadHistory(),
		h.hideResultAfter(seq),
	)
}

// handleTranscriptFailed shows the error and keeps the text for another attempt.
func (h *Handler) handleTranscriptFailed(msg transcriptFailedMsg) tea.Cmd {
	h.Submitting = false
	h.SetResult(state.ResultError, "Error: "+errorText(msg.err, "Failed to process transcript"))
	logf("Transcript submission failed: %v", msg.err)
	return nil
}
