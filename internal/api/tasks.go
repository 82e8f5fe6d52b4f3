package api

import (
	"fmt"
	"net/url"
	"strconv"
)

func taskPath(id int) string {
	return "/api/tasks/" + strconv.Itoa(id)
}

// GetTasks returns all tasks in server order.
// A non-empty status restricts the result to that status.
func (c *Client) GetTasks(status TaskStatus) ([]Task, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("invalid status %q: must be open or done", status)
	}

	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	tasks := make([]Task, 0)
	if err := c.GetWithQuery("/api/tasks", query, &tasks); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(id int) (*Task, error) {
	var task Task
	if err := c.Get(taskPath(id), &task); err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return &task, nil
}

// EditTask replaces a task's text, owner and due date.
func (c *Client) EditTask(id int, req EditTaskRequest) (*Task, error) {
	var task Task
	if err := c.Patch(taskPath(id), req, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return &task, nil
}

// SetTaskStatus marks a task open or done.
func (c *Client) SetTaskStatus(id int, status TaskStatus) (*Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q: must be open or done", status)
	}

	var task Task
	if err := c.Patch(taskPath(id), StatusUpdateRequest{Status: status}, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id int) error {
	var resp DeleteResponse
	if err := c.Delete(taskPath(id), &resp); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
