package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/config"
	"github.com/hy4ri/actionboard/internal/testutil"
	"github.com/hy4ri/actionboard/internal/tui/state"
)

func strPtr(s string) *string { return &s }

// isolate keeps config, data and token lookups inside temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.TokenEnv, "test-token")
	return filepath.Join(t.TempDir(), "config.yaml")
}

// runCLI executes the command tree against backend with stdin and returns combined output.
func runCLI(t *testing.T, backend *testutil.FakeBackend, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := isolate(t)

	cmd := NewRootCmd("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgPath, "--server", backend.URL()))

	err := cmd.Execute()
	return out.String(), err
}

func TestSubmitFromArgs(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Extract = func(string) ([]api.Task, error) {
		return []api.Task{{Task: "Send the report", Owner: strPtr("Alice"), DueDate: strPtr("2024-01-05")}}, nil
	}

	out, err := runCLI(t, backend, "", "submit", "Alice", "will", "send", "the", "report")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, want := range []string{"Successfully extracted 1 action item(s)", "[ ] #1 Send the report", "Owner: Alice", "Due: 2024-01-05"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	reqs := backend.Requests()
	if len(reqs) != 1 || reqs[0].Body != `{"text":"Alice will send the report"}` {
		t.Errorf("unexpected requests %+v", reqs)
	}
}

func TestSubmitFromStdin(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	out, err := runCLI(t, backend, "\n  Book the venue\nDraft the agenda\n\n", "submit")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.Contains(out, "Successfully extracted 2 action item(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	var body api.ProcessTranscriptRequest
	if err := json.Unmarshal([]byte(backend.Requests()[0].Body), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Text != "Book the venue\nDraft the agenda" {
		t.Errorf("transcript should be trimmed, got %q", body.Text)
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		fail     bool
		wantErr  string
		wantPOST int
	}{
		{"blank transcript is rejected locally", "   \n\t", false, "Please enter a transcript", 0},
		{"server detail is reported", "Standup notes", true, "LLM unavailable", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend(t)
			if tt.fail {
				backend.Fail("POST /api/transcripts", http.StatusInternalServerError, "LLM unavailable")
			}

			_, err := runCLI(t, backend, tt.stdin, "submit")
			if err == nil || errorText(err) != tt.wantErr {
				t.Errorf("expected error %q, got %v", tt.wantErr, err)
			}
			if got := backend.CountMethod(http.MethodPost); got != tt.wantPOST {
				t.Errorf("expected %d POSTs, got %d", tt.wantPOST, got)
			}
		})
	}
}

func TestTasksStatusFilter(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTask(api.Task{Task: "open item"})
	backend.AddTask(api.Task{Task: "done item", Status: api.StatusDone})

	out, err := runCLI(t, backend, "", "tasks", "--status", "done")
	if err != nil {
		t.Fatalf("tasks failed: %v", err)
	}
	if !strings.Contains(out, "[x] #2 done item") || strings.Contains(out, "open item") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if reqs := backend.Requests(); len(reqs) != 1 || reqs[0].Query != "status=done" {
		t.Errorf("expected status query, got %+v", reqs)
	}
}

func TestTasksEmptyAndInvalid(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	out, err := runCLI(t, backend, "", "tasks")
	if err != nil {
		t.Fatalf("tasks failed: %v", err)
	}
	if !strings.Contains(out, "No action items yet. Process a transcript to get started.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := runCLI(t, backend, "", "tasks", "--status", "later"); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestDoneAndReopen(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTask(api.Task{ID: 7, Task: "Ship release notes"})

	out, err := runCLI(t, backend, "", "done", "7")
	if err != nil {
		t.Fatalf("done failed: %v", err)
	}
	if !strings.Contains(out, "Marked done: Ship release notes") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if task, _ := backend.Task(7); task.Status != api.StatusDone {
		t.Errorf("task 7 should be done, got %q", task.Status)
	}

	if _, err := runCLI(t, backend, "", "reopen", "7"); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if task, _ := backend.Task(7); task.Status != api.StatusOpen {
		t.Errorf("task 7 should be open, got %q", task.Status)
	}
}

func TestStatusChangeErrors(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	if _, err := runCLI(t, backend, "", "done", "abc"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
	if backend.CountMethod(http.MethodPatch) != 0 {
		t.Error("no request should be sent for a bad id")
	}

	_, err := runCLI(t, backend, "", "done", "42")
	if err == nil || err.Error() != "Task not found" {
		t.Errorf("expected server detail, got %v", err)
	}
}

func TestEditKeepsUnsetFields(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTask(api.Task{ID: 3, Task: "Draft agenda", Owner: strPtr("Bob"), DueDate: strPtr("2024-02-01")})

	if _, err := runCLI(t, backend, "", "edit", "3", "--task", "Draft the agenda"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	task, _ := backend.Task(3)
	if task.Task != "Draft the agenda" || task.OwnerName() != "Bob" || task.Due() != "2024-02-01" {
		t.Errorf("unexpected task after edit: %+v", task)
	}
}

func TestEditClearsOwner(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTask(api.Task{ID: 3, Task: "Draft agenda", Owner: strPtr("Bob")})

	if _, err := runCLI(t, backend, "", "edit", "3", "--owner", ""); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	var patch string
	for _, r := range backend.Requests() {
		if r.Method == http.MethodPatch {
			patch = r.Body
		}
	}
	if patch != `{"task":"Draft agenda","owner":null,"due_date":null}` {
		t.Errorf("unexpected PATCH body %s", patch)
	}
	if task, _ := backend.Task(3); task.Owner != nil {
		t.Errorf("owner should be cleared, got %q", *task.Owner)
	}
}

func TestEditValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"blank description", []string{"--task", "  "}, state.ErrEmptyDescription},
		{"bad due date", []string{"--due", "next friday"}, state.ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend(t)
			backend.AddTask(api.Task{ID: 1, Task: "Book venue"})

			_, err := runCLI(t, backend, "", append([]string{"edit", "1"}, tt.args...)...)
			if err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if backend.CountMethod(http.MethodPatch) != 0 {
				t.Error("invalid edits must not reach the server")
			}
		})
	}
}

func TestErrorTextForValidation(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errEmptyTranscript, "Please enter a transcript"},
		{state.ErrEmptyDescription, "Task description cannot be empty"},
		{state.ErrInvalidDueDate, "Due date must be in YYYY-MM-DD format"},
		{errors.New("connection refused"), "connection refused"},
	}
	for _, tt := range tests {
		if got := errorText(tt.err); got != tt.want {
			t.Errorf("errorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestEditNeedsAField(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	if _, err := runCLI(t, backend, "", "edit", "1"); err == nil {
		t.Error("expected an error when no field is given")
	}
	if len(backend.Requests()) != 0 {
		t.Error("no request should be sent")
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		deleted bool
	}{
		{"declined", "n\n", nil, false},
		{"empty answer declines", "\n", nil, false},
		{"confirmed", "y\n", nil, true},
		{"--yes skips the prompt", "", []string{"--yes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend(t)
			backend.AddTask(api.Task{ID: 5, Task: "Book venue"})

			out, err := runCLI(t, backend, tt.stdin, append([]string{"delete", "5"}, tt.args...)...)
			if err != nil {
				t.Fatalf("delete failed: %v", err)
			}

			_, exists := backend.Task(5)
			if exists == tt.deleted {
				t.Errorf("expected deleted=%v, output:\n%s", tt.deleted, out)
			}
			if !tt.deleted && !strings.Contains(out, "Aborted.") {
				t.Errorf("expected abort message:\n%s", out)
			}
		})
	}
}

func TestDeleteFailure(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTask(api.Task{ID: 5, Task: "Book venue"})
	backend.Fail("DELETE /api/tasks/:id", http.StatusInternalServerError, "")

	_, err := runCLI(t, backend, "", "delete", "5", "--yes")
	if err == nil || err.Error() != "Failed to delete task" {
		t.Errorf("expected fallback message, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTranscript("Kickoff", time.Now().Add(-2*time.Hour))
	backend.AddTranscript("Standup \x1b[31mnotes\x1b[0m", time.Now().Add(-10*time.Minute), api.Task{Task: "a"}, api.Task{Task: "b"})

	out, err := runCLI(t, backend, "", "history", "--limit", "1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "2 task(s)") || !strings.Contains(out, "Standup notes") || strings.Contains(out, "Kickoff") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if reqs := backend.Requests(); len(reqs) != 1 || reqs[0].Query != "limit=1" {
		t.Errorf("expected limit query, got %+v", reqs)
	}
}

func TestHealth(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Health.LLM = "error: connection refused"

	out, err := runCLI(t, backend, "", "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	for _, want := range []string{"Backend:   ok", "Database:  ok", "LLM:       error: connection refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInitWritesConfig(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	cfgPath := isolate(t)

	run := func(stdin string, args ...string) string {
		cmd := NewRootCmd("test")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetArgs(append([]string{"init", "--config", cfgPath, "--server", backend.URL()}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		return out.String()
	}

	out := run("")
	if !strings.Contains(out, "Config file created") {
		t.Errorf("unexpected output:\n%s", out)
	}

	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Server.BaseURL != backend.URL() {
		t.Errorf("expected base URL %q, got %q", backend.URL(), cfg.Server.BaseURL)
	}

	if err := os.WriteFile(cfgPath, []byte("server:\n  base_url: http://keep.me\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if out := run("n\n"); !strings.Contains(out, "Aborted.") {
		t.Errorf("expected abort on existing file:\n%s", out)
	}
	if data, _ := os.ReadFile(cfgPath); !strings.Contains(string(data), "keep.me") {
		t.Error("declined init must not overwrite the file")
	}

	run("", "--force")
	if data, _ := os.ReadFile(cfgPath); strings.Contains(string(data), "keep.me") {
		t.Error("--force should overwrite the file")
	}
}

func TestVersion(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	out, err := runCLI(t, backend, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "actionboard version 1.2.3" {
		t.Errorf("unexpected output %q", out)
	}
}
