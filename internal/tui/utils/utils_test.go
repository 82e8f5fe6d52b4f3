package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/actionboard/internal/api"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"日本語テキスト", 7, "日本語…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"markup stays literal", "<script>alert(1)</script>", "<script>alert(1)</script>"},
		{"ansi color stripped", "\x1b[31mred\x1b[0m text", "red text"},
		{"cursor movement stripped", "a\x1b[2Jb", "ab"},
		{"bell and carriage return dropped", "ding\a\r\n", "ding\n"},
		{"tabs become spaces", "a\tb", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeLine(t *testing.T) {
	got := SanitizeLine("Send\nthe   report\x1b[1m")
	if got != "Send the report" {
		t.Errorf("unexpected %q", got)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 10 * time.Second, "0 minute(s) ago"},
		{"minutes", 59 * time.Minute, "59 minute(s) ago"},
		{"hours", 3 * time.Hour, "3 hour(s) ago"},
		{"days", 6 * 24 * time.Hour, "6 day(s) ago"},
		{"future clamps", -5 * time.Minute, "0 minute(s) ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelative(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	old := now.Add(-30 * 24 * time.Hour)
	if got := FormatRelative(old, now); got != old.Local().Format("Jan 2, 2006") {
		t.Errorf("expected absolute date, got %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	if got := FormatTimestamp("2024-01-05T10:00:00.000001", now); got != "1 hour(s) ago" {
		t.Errorf("unexpected %q", got)
	}
	if got := FormatTimestamp("not a time", now); got != "not a time" {
		t.Errorf("unexpected %q", got)
	}
}

func TestErrorText(t *testing.T) {
	withDetail := fmt.Errorf("failed: %w", &api.APIError{StatusCode: 500, Detail: "LLM down"})
	noDetail := &api.APIError{StatusCode: 502, Message: "<html>bad gateway</html>"}

	if got := ErrorText(withDetail, "fallback"); got != "LLM down" {
		t.Errorf("expected detail, got %q", got)
	}
	if got := ErrorText(noDetail, "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := ErrorText(errors.New("dial tcp: refused"), "fallback"); got != "fallback" {
		t.Errorf("expected fallback for transport error, got %q", got)
	}
	if got := ErrorText(&api.APIError{StatusCode: 401}, "fallback"); got != UnauthorizedMessage {
		t.Errorf("expected token hint for 401, got %q", got)
	}
	if got := ErrorText(&api.APIError{StatusCode: 401, Detail: "Token expired"}, "fallback"); got != "Token expired" {
		t.Errorf("detail should still win on 401, got %q", got)
	}
	if got := ErrorText(nil, "fallback"); got != "" {
		t.Errorf("expected empty for nil, got %q", got)
	}
}

func TestExtractedMessage(t *testing.T) {
	if got := ExtractedMessage(1); !strings.Contains(got, "Successfully extracted 1 action item(s)") {
		t.Errorf("unexpected %q", got)
	}
}
