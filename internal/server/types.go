package server

import (
	"github.com/rocketdigital/taskpilot/internal/attachment"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

// SuggestRequest is the payload for POST /api/ai/suggest.
type SuggestRequest struct {
	suggest.TaskFormData
	Attachments []attachment.File `json:"attachments,omitempty"`
}

// CreateTaskRequest is the payload for POST /api/clickup/create-task.
type CreateTaskRequest struct {
	SpaceID  string            `json:"spaceId" validate:"required"`
	TaskData *clickup.TaskData `json:"taskData" validate:"required"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
