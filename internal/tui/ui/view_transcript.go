package ui

import (
	"fmt"
	"strings"

	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/styles"
	"github.com/hy4ri/actionboard/internal/tui/utils"
)

// renderTranscriptPane renders the transcript input and the result of the last submission.
func (r *Renderer) renderTranscriptPane(width int) string {
	var b strings.Builder
	b.WriteString(r.TranscriptInput.View())
	b.WriteString("\n")

	switch {
	case r.Submitting:
		b.WriteString(r.Spinner.View() + " Processing transcript...")
	case r.Result != nil:
		style := styles.ResultSuccess
		if r.Result.Kind == state.ResultError {
			style = styles.ResultError
		}
		b.WriteString(style.Render(utils.SanitizeLine(r.Result.Text)))
	default:
		b.WriteString(styles.HelpDesc.Render(r.Keymap.Submit.Key + " to extract action items"))
	}

	return r.pane(state.PaneTranscript, "Process Transcript", width, b.String())
}

// renderHistoryPane renders the most recent transcripts, newest first.
func (r *Renderer) renderHistoryPane(width, height int) string {
	inner := width - styles.Pane.GetHorizontalFrameSize()
	title := "Recent Transcripts"

	var body string
	switch {
	case r.HistoryErr != nil:
		body = styles.EmptyState.Render("Error loading history.")
	case !r.HistoryLoaded:
		body = styles.EmptyState.Render("Loading...")
	case len(r.Transcripts) == 0:
		body = styles.EmptyState.Render("No transcripts processed yet.")
	default:
		items := make([]string, 0, len(r.Transcripts))
		for i := range r.Transcripts {
			items = append(items, r.renderHistoryItem(i, inner))
		}
		// Title line plus frame
		body = strings.Join(window(items, r.HistoryCursor, height-3), "\n")
	}

	return r.pane(state.PaneHistory, title, width, body)
}

func (r *Renderer) renderHistoryItem(i, width int) string {
	tr := r.Transcripts[i]

	meta := styles.HistoryMeta.Render(utils.FormatTimestamp(tr.CreatedAt, r.Now())) +
		"  " + styles.HistoryCount.Render(fmt.Sprintf("%d task(s)", len(tr.Tasks)))

	textWidth := width - 2
	if textWidth < 10 {
		textWidth = 10
	}
	text := styles.HistoryText.Render(utils.TruncateString(utils.SanitizeLine(tr.Text), textWidth))

	cursor := "  "
	if r.FocusedPane == state.PaneHistory && i == r.HistoryCursor {
		cursor = styles.TaskAction.Render("> ")
	}
	return cursor + meta + "\n  " + text
}

// window returns the items that fit in maxLines while keeping cursor visible.
func window(items []string, cursor, maxLines int) []string {
	if maxLines <= 0 || len(items) == 0 {
		return items
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(items) {
		cursor = len(items) - 1
	}

	start := 0
	for {
		lines := 0
		end := start
		for end < len(items) && lines+strings.Count(items[end], "\n")+1 <= maxLines {
			lines += strings.Count(items[end], "\n") + 1
			end++
		}
		if cursor < end || start >= cursor {
			if end == start {
				end = start + 1
			}
			return items[start:end]
		}
		start++
	}
}
