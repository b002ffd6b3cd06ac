package server

import (
	"context"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

// Suggester produces task suggestions. *suggest.Engine implements it.
type Suggester interface {
	Suggest(ctx context.Context, data suggest.TaskFormData) (*suggest.TaskSuggestion, error)
}

// ClickUp is the hierarchy and submission surface the routes need.
// *clickup.Service implements it.
type ClickUp interface {
	Conventions() clickup.Conventions
	FindWorkspace(ctx context.Context) (*clickup.Workspace, error)
	ListSpaces(ctx context.Context, workspaceID string) ([]clickup.Space, error)
	ListSprints(ctx context.Context, workspaceID string) []clickup.Sprint
	ListMembers(ctx context.Context, workspaceID string) []clickup.Member
	ListEpics(ctx context.Context, spaceID string) []clickup.Epic
	ListStatuses(ctx context.Context, spaceID string) []clickup.Status
	CreateTask(ctx context.Context, spaceID string, task clickup.TaskData) (*clickup.CreatedTask, error)
}

// SuggesterFunc and ClickUpFunc resolve their dependency per request, so a
// missing credential is reported on the call that needs it and never at boot.
type (
	SuggesterFunc func(ctx context.Context) (Suggester, error)
	ClickUpFunc   func(ctx context.Context) (ClickUp, error)
)
