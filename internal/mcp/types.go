// Package mcp implements the MCP tools that expose task suggestion and
// ClickUp task creation to AI assistants.
package mcp

import (
	"context"

	"github.com/rocketdigital/taskpilot/internal/attachment"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

// Tool names
const (
	ToolSuggestTask = "suggest_task"
	ToolCreateTask  = "create_task"
)

// Suggester is implemented by *suggest.Engine.
type Suggester interface {
	Suggest(ctx context.Context, data suggest.TaskFormData) (*suggest.TaskSuggestion, error)
}

// TaskCreator is implemented by *clickup.Service.
type TaskCreator interface {
	CreateTask(ctx context.Context, spaceID string, task clickup.TaskData) (*clickup.CreatedTask, error)
}

// SuggestTaskParams defines the parameters for the suggest_task tool.
type SuggestTaskParams struct {
	// Description is the free-text task description. Required unless
	// attachments are given.
	Description string `json:"description"`

	// Context lists; the AI only picks ids from these.
	AvailableSpaces   []suggest.SpaceRef  `json:"availableSpaces,omitempty"`
	AvailableMembers  []suggest.MemberRef `json:"availableMembers,omitempty"`
	AvailableSprints  []suggest.SprintRef `json:"availableSprints,omitempty"`
	AvailableEpics    []suggest.EpicRef   `json:"availableEpics,omitempty"`
	AvailableStatuses []suggest.StatusRef `json:"availableStatuses,omitempty"`

	Attachments []attachment.File `json:"attachments,omitempty"`
}

// CreateTaskParams defines the parameters for the create_task tool.
type CreateTaskParams struct {
	SpaceID  string            `json:"spaceId"`  // Required
	TaskData *clickup.TaskData `json:"taskData"` // Required: name at least
}

// ToolResult is the outcome of one tool call. Exactly one of Content and
// Error is set.
type ToolResult struct {
	Tool    string `json:"tool"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}
