// Package testutil provides testing utilities.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hy4ri/actionboard/internal/api"
)

// timestampLayout matches the naive UTC timestamps the real backend emits.
const timestampLayout = "2006-01-02T15:04:05.000000"

// Request is one HTTP request received by the fake backend.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// ExtractFunc turns transcript text into extracted tasks.
// Only the Task, Owner and DueDate fields of the result are used.
type ExtractFunc func(text string) ([]api.Task, error)

type failure struct {
	status int
	detail string
}

// FakeBackend is an in-memory implementation of the action items REST API for testing.
type FakeBackend struct {
	mu          sync.Mutex
	server      *httptest.Server
	tasks       []api.Task // newest first
	transcripts []api.Transcript
	nextTaskID  int
	nextTransID int
	requests    []Request
	failures    map[string]failure

	// Extract is called for every accepted transcript. Defaults to one task per non-blank line.
	Extract ExtractFunc

	// Now stamps created_at values.
	Now func() time.Time

	// Health is returned by GET /status.
	Health api.StatusResponse
}

// NewFakeBackend starts a fake backend that is shut down when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		nextTaskID:  1,
		nextTransID: 1,
		failures:    make(map[string]failure),
		Extract:     LineExtractor,
		Now:         func() time.Time { return time.Now().UTC() },
		Health:      api.StatusResponse{Backend: "ok", Database: "ok", LLM: "ok"},
	}
	f.server = httptest.NewServer(f.router())
	t.Cleanup(f.server.Close)
	return f
}

// LineExtractor creates one task per non-blank line of the transcript.
func LineExtractor(text string) ([]api.Task, error) {
	var tasks []api.Task
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tasks = append(tasks, api.Task{Task: line})
		}
	}
	return tasks, nil
}

// URL returns the base URL of the fake backend.
func (f *FakeBackend) URL() string {
	return f.server.URL
}

// Client returns an API client pointed at the fake backend.
func (f *FakeBackend) Client() *api.Client {
	c := api.NewClient(f.server.URL, "")
	c.SetHTTPClient(f.server.Client())
	return c
}

// AddTask seeds a task and returns it with its assigned ID.
func (f *FakeBackend) AddTask(task api.Task) api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	if task.ID == 0 {
		task.ID = f.nextTaskID
	}
	if task.ID >= f.nextTaskID {
		f.nextTaskID = task.ID + 1
	}
	if task.Status == "" {
		task.Status = api.StatusOpen
	}
	if task.CreatedAt == "" {
		task.CreatedAt = f.Now().Format(timestampLayout)
	}
	f.tasks = append([]api.Task{task}, f.tasks...)
	return task
}

// AddTranscript seeds a transcript created at the given time.
func (f *FakeBackend) AddTranscript(text string, created time.Time, tasks ...api.Task) api.Transcript {
	f.mu.Lock()
	defer f.mu.Unlock()

	tr := api.Transcript{
		ID:        f.nextTransID,
		Text:      text,
		CreatedAt: created.UTC().Format(timestampLayout),
		Tasks:     tasks,
	}
	f.nextTransID++
	f.transcripts = append([]api.Transcript{tr}, f.transcripts...)
	return tr
}

// Tasks returns a copy of the stored tasks in server order.
func (f *FakeBackend) Tasks() []api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Task(nil), f.tasks...)
}

// Task returns the stored task with the given ID.
func (f *FakeBackend) Task(id int) (api.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(id)
	if i < 0 {
		return api.Task{}, false
	}
	return f.tasks[i], true
}

// Fail makes every request to route answer with status and a {"detail": ...} body.
// Route uses gin syntax, e.g. "PATCH /api/tasks/:id".
func (f *FakeBackend) Fail(route string, status int, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = failure{status: status, detail: detail}
}

// Recover removes a failure installed by Fail.
func (f *FakeBackend) Recover(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, route)
}

// Requests returns every request received so far.
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many requests matched method and path.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// CountMethod returns how many requests used method.
func (f *FakeBackend) CountMethod(method string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// ResetRequests clears the request log.
func (f *FakeBackend) ResetRequests() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *FakeBackend) router() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(f.record, f.inject)

	router.GET("/status", f.status)
	router.GET("/api/tasks", f.listTasks)
	router.GET("/api/tasks/:id", f.getTask)
	router.PATCH("/api/tasks/:id", f.updateTask)
	router.DELETE("/api/tasks/:id", f.deleteTask)
	router.POST("/api/transcripts", f.processTranscript)
	router.GET("/api/transcripts", f.listTranscripts)

	return router
}

func (f *FakeBackend) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Body:   string(body),
	})
	f.mu.Unlock()

	c.Next()
}

func (f *FakeBackend) inject(c *gin.Context) {
	f.mu.Lock()
	fail, ok := f.failures[c.Request.Method+" "+c.FullPath()]
	f.mu.Unlock()

	if ok {
		abortDetail(c, fail.status, fail.detail)
		return
	}
	c.Next()
}

func abortDetail(c *gin.Context, status int, detail string) {
	if detail == "" {
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func (f *FakeBackend) status(c *gin.Context) {
	f.mu.Lock()
	health := f.Health
	f.mu.Unlock()
	c.JSON(http.StatusOK, health)
}

func (f *FakeBackend) listTasks(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !api.TaskStatus(status).Valid() {
		abortDetail(c, http.StatusBadRequest, "Status must be 'open' or 'done'")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := make([]api.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if status == "" || string(t.Status) == status {
			tasks = append(tasks, t)
		}
	}
	c.JSON(http.StatusOK, tasks)
}

func (f *FakeBackend) getTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		abortDetail(c, http.StatusNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, f.tasks[i])
}

// updateTask applies only the fields present in the body; an explicit null clears owner or due_date.
func (f *FakeBackend) updateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		abortDetail(c, http.StatusNotFound, "Task not found")
		return
	}
	task := f.tasks[i]

	if raw, ok := fields["task"]; ok {
		if err := json.Unmarshal(raw, &task.Task); err != nil {
			abortDetail(c, http.StatusUnprocessableEntity, "task must be a string")
			return
		}
	}
	if raw, ok := fields["owner"]; ok {
		task.Owner = nil
		if err := json.Unmarshal(raw, &task.Owner); err != nil {
			abortDetail(c, http.StatusUnprocessableEntity, "owner must be a string or null")
			return
		}
	}
	if raw, ok := fields["due_date"]; ok {
		task.DueDate = nil
		if err := json.Unmarshal(raw, &task.DueDate); err != nil {
			abortDetail(c, http.StatusUnprocessableEntity, "due_date must be a string or null")
			return
		}
	}
	if raw, ok := fields["status"]; ok {
		var status api.TaskStatus
		if err := json.Unmarshal(raw, &status); err != nil || !status.Valid() {
			abortDetail(c, http.StatusBadRequest, "Status must be 'open' or 'done'")
			return
		}
		task.Status = status
	}

	f.tasks[i] = task
	c.JSON(http.StatusOK, task)
}

func (f *FakeBackend) deleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		abortDetail(c, http.StatusNotFound, "Task not found")
		return
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	c.JSON(http.StatusOK, api.DeleteResponse{Message: "Task deleted successfully"})
}

func (f *FakeBackend) processTranscript(c *gin.Context) {
	var req api.ProcessTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		abortDetail(c, http.StatusBadRequest, "Transcript cannot be empty")
		return
	}

	extracted, err := f.Extract(req.Text)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, "Failed to process transcript: "+err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.Now().UTC().Format(timestampLayout)
	tr := api.Transcript{ID: f.nextTransID, Text: req.Text, CreatedAt: now}
	f.nextTransID++

	created := make([]api.Task, 0, len(extracted))
	for _, e := range extracted {
		created = append(created, api.Task{
			ID:           f.nextTaskID,
			TranscriptID: tr.ID,
			Task:         e.Task,
			Owner:        e.Owner,
			DueDate:      e.DueDate,
			Status:       api.StatusOpen,
			CreatedAt:    now,
		})
		f.nextTaskID++
	}
	tr.Tasks = created

	f.tasks = append(append([]api.Task(nil), created...), f.tasks...)
	f.transcripts = append([]api.Transcript{tr}, f.transcripts...)

	c.JSON(http.StatusOK, api.ProcessTranscriptResponse{TranscriptID: tr.ID, Tasks: created})
}

func (f *FakeBackend) listTranscripts(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abortDetail(c, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
		limit = n
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.transcripts
	if len(out) > limit {
		out = out[:limit]
	}
	c.JSON(http.StatusOK, append([]api.Transcript{}, out...))
}

func (f *FakeBackend) indexOf(id int) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortDetail(c, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}
