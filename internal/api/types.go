// Package api provides a client for the Action Items Tracker REST API.
package api

import (
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of an action item.
type TaskStatus string

const (
	StatusOpen TaskStatus = "open"
	StatusDone TaskStatus = "done"
)

// Valid reports whether s is a status the backend accepts.
func (s TaskStatus) Valid() bool {
	return s == StatusOpen || s == StatusDone
}

// Toggled returns the opposite status.
func (s TaskStatus) Toggled() TaskStatus {
	if s == StatusDone {
		return StatusOpen
	}
	return StatusDone
}

// Task represents an action item extracted from a transcript.
type Task struct {
	ID           int        `json:"id"`
	TranscriptID int        `json:"transcript_id"`
	Task         string     `json:"task"`
	Owner        *string    `json:"owner"`
	DueDate      *string    `json:"due_date"` // YYYY-MM-DD
	Status       TaskStatus `json:"status"`
	CreatedAt    string     `json:"created_at"`
}

// IsDone returns true if the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// OwnerName returns the owner, or "" when unassigned.
func (t Task) OwnerName() string {
	if t.Owner == nil {
		return ""
	}
	return *t.Owner
}

// Due returns the due date string, or "" when there is none.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// Transcript is a submitted meeting transcript with the tasks extracted from it.
type Transcript struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Tasks     []Task `json:"tasks"`
}

// The backend stores naive UTC datetimes, so timestamps may arrive without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a backend timestamp. Values without a zone are treated as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ProcessTranscriptRequest is the request body for submitting a transcript.
type ProcessTranscriptRequest struct {
	Text string `json:"text"`
}

// ProcessTranscriptResponse is returned after a transcript has been processed.
type ProcessTranscriptResponse struct {
	TranscriptID int    `json:"transcript_id"`
	Tasks        []Task `json:"tasks"`
}

// EditTaskRequest is the request body for an inline edit.
// Owner and DueDate are always sent; nil is encoded as null and clears the field.
type EditTaskRequest struct {
	Task    string  `json:"task"`
	Owner   *string `json:"owner"`
	DueDate *string `json:"due_date"`
}

// StatusUpdateRequest is the request body for changing a task's status.
type StatusUpdateRequest struct {
	Status TaskStatus `json:"status"`
}

// StatusResponse reports the health of the backend and its dependencies.
type StatusResponse struct {
	Backend  string `json:"backend"`
	Database string `json:"database"`
	LLM      string `json:"llm"`
}

// Healthy returns true if every component reports "ok".
func (s StatusResponse) Healthy() bool {
	return s.Backend == "ok" && s.Database == "ok" && s.LLM == "ok"
}

// DeleteResponse is returned by DELETE /api/tasks/{id}.
type DeleteResponse struct {
	Message string `json:"message"`
}
