package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockServer creates a test HTTP server for mocking API responses.
func mockServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func strPtr(s string) *string { return &s }

func TestNewClient(t *testing.T) {
	client := NewClient("", "")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("unexpected base URL: %s", client.baseURL)
	}

	client = NewClient("http://example.test:9000/", "tok")
	if client.baseURL != "http://example.test:9000" {
		t.Errorf("trailing slash not trimmed: %s", client.baseURL)
	}
	if client.accessToken != "tok" {
		t.Errorf("expected token %q, got %q", "tok", client.accessToken)
	}
}

func TestGetTasks(t *testing.T) {
	tests := []struct {
		name       string
		status     TaskStatus
		response   []Task
		statusCode int
		wantErr    bool
	}{
		{
			name:   "successful request",
			status: "",
			response: []Task{
				{ID: 2, Task: "Second", Status: StatusOpen},
				{ID: 1, Task: "First", Status: StatusDone, Owner: strPtr("Alice")},
			},
			statusCode: http.StatusOK,
		},
		{
			name:       "filter by status",
			status:     StatusDone,
			response:   []Task{{ID: 1, Task: "First", Status: StatusDone}},
			statusCode: http.StatusOK,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if r.URL.Path != "/api/tasks" {
					t.Errorf("expected path /api/tasks, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("status"); got != string(tt.status) {
					t.Errorf("expected status query %q, got %q", tt.status, got)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}
				if r.Header.Get("Authorization") != "" {
					t.Error("expected no Authorization header without a token")
				}

				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(tt.response)
			})
			defer server.Close()

			client := NewClient(server.URL, "")
			tasks, err := client.GetTasks(tt.status)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(tasks) != len(tt.response) {
				t.Fatalf("expected %d tasks, got %d", len(tt.response), len(tasks))
			}
			for i := range tasks {
				if tasks[i].ID != tt.response[i].ID {
					t.Errorf("order not preserved at %d: got id %d, want %d", i, tasks[i].ID, tt.response[i].ID)
				}
			}
		})
	}
}

func TestGetTasksInvalidStatus(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	if _, err := client.GetTasks("archived"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestEditTaskSendsExplicitNulls(t *testing.T) {
	var body map[string]json.RawMessage

	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH request, got %s", r.Method)
		}
		if r.URL.Path != "/api/tasks/7" {
			t.Errorf("expected path /api/tasks/7, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		json.NewEncoder(w).Encode(Task{ID: 7, Task: "Send the report", Status: StatusOpen})
	})
	defer server.Close()

	client := NewClient(server.URL, "")
	task, err := client.EditTask(7, EditTaskRequest{Task: "Send the report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 7 {
		t.Errorf("expected task 7, got %d", task.ID)
	}

	if string(body["task"]) != `"Send the report"` {
		t.Errorf("unexpected task field: %s", body["task"])
	}
	if string(body["owner"]) != "null" {
		t.Errorf("expected owner null, got %s", body["owner"])
	}
	if string(body["due_date"]) != "null" {
		t.Errorf("expected due_date null, got %s", body["due_date"])
	}
	if _, ok := body["status"]; ok {
		t.Error("edit must not send status")
	}
}

func TestSetTaskStatus(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if strings.TrimSpace(string(raw)) != `{"status":"done"}` {
			t.Errorf("unexpected body: %s", raw)
		}
		json.NewEncoder(w).Encode(Task{ID: 7, Status: StatusDone})
	})
	defer server.Close()

	client := NewClient(server.URL, "")
	task, err := client.SetTaskStatus(7, StatusDone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.IsDone() {
		t.Error("expected task to be done")
	}

	if _, err := client.SetTaskStatus(7, "later"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
		notFound   bool
	}{
		{name: "deleted", statusCode: http.StatusOK},
		{name: "missing", statusCode: http.StatusNotFound, wantErr: true, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE request, got %s", r.Method)
				}
				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					w.Write([]byte(`{"message":"Task deleted successfully"}`))
				} else {
					w.Write([]byte(`{"detail":"Task not found"}`))
				}
			})
			defer server.Close()

			err := NewClient(server.URL, "").DeleteTask(3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v", tt.wantErr, err)
			}
			if tt.notFound {
				apiErr, ok := IsAPIError(err)
				if !ok {
					t.Fatalf("expected wrapped APIError, got %T", err)
				}
				if !apiErr.IsNotFound() {
					t.Errorf("expected 404, got %d", apiErr.StatusCode)
				}
				if apiErr.Detail != "Task not found" {
					t.Errorf("unexpected detail %q", apiErr.Detail)
				}
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	if _, err := NewClient(server.URL, "secret").GetTasks(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
