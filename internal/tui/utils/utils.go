// Package utils provides shared text helpers for the TUI and the CLI.
package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/mattn/go-runewidth"
)

// TruncateString truncates a string to the given width, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxLen {
		return s
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxLen-1 { // -1 for ellipsis
			return s[:i] + "…"
		}
		w += rw
	}

	return s
}

// Sanitize makes server-provided text safe to print to a terminal.
// Escape sequences are stripped and other control characters dropped;
// newlines and tabs survive. Markup is left as literal text.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r == '\r':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// SanitizeLine is Sanitize for single-line fields: newlines fold to spaces.
func SanitizeLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(Sanitize(s), "\n", " ")), " ")
}

// FormatRelative renders t relative to now: minutes, hours, days, then a plain date after a week.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 60:
		return fmt.Sprintf("%d minute(s) ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d hour(s) ago", hours)
	case days < 7:
		return fmt.Sprintf("%d day(s) ago", days)
	}
	return t.Local().Format("Jan 2, 2006")
}

// FormatTimestamp is FormatRelative for a raw backend timestamp.
// Unparseable values are shown as-is.
func FormatTimestamp(raw string, now time.Time) string {
	ts, err := api.ParseTimestamp(raw)
	if err != nil {
		return SanitizeLine(raw)
	}
	return FormatRelative(ts, now)
}

// UnauthorizedMessage is shown when the backend rejects the bearer token without saying why.
const UnauthorizedMessage = "Not authorized: check the API token"

// ErrorText picks the message to show a user for err.
// The server's detail wins; transport failures and bare status errors fall back.
func ErrorText(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := api.IsAPIError(err); ok {
		if apiErr.Detail != "" {
			return SanitizeLine(apiErr.Detail)
		}
		if apiErr.IsUnauthorized() {
			return UnauthorizedMessage
		}
	}
	return fallback
}

// ExtractedMessage is the confirmation shown after a transcript is processed.
func ExtractedMessage(count int) string {
	return fmt.Sprintf("Successfully extracted %d action item(s)", count)
}
