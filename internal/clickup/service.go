package clickup

import (
	"log/slog"
)

// Default naming conventions of the team's ClickUp hierarchy.
const (
	DefaultWorkspaceName       = "Rocket Digital"
	DefaultSprintSpace         = "tech"
	DefaultSprintFolderKeyword = "sprint"
)

// Conventions name the workspace, and the space/folder that hold sprints.
// SprintSpace is matched case-insensitively; SprintFolderKeyword must be
// contained, case-insensitively, in the sprint folder name.
type Conventions struct {
	WorkspaceName       string
	SprintSpace         string
	SprintFolderKeyword string
}

// DefaultConventions returns the conventions used by the team.
func DefaultConventions() Conventions {
	return Conventions{
		WorkspaceName:       DefaultWorkspaceName,
		SprintSpace:         DefaultSprintSpace,
		SprintFolderKeyword: DefaultSprintFolderKeyword,
	}
}

// Tracker receives usage events. telemetry.Client satisfies it.
type Tracker interface {
	Track(event string, properties map[string]any)
}

// Service resolves the project hierarchy and submits tasks.
type Service struct {
	client  *Client
	conv    Conventions
	log     *slog.Logger
	tracker Tracker
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithConventions overrides the naming conventions. Empty fields keep their default.
func WithConventions(conv Conventions) ServiceOption {
	return func(s *Service) {
		if conv.WorkspaceName != "" {
			s.conv.WorkspaceName = conv.WorkspaceName
		}
		if conv.SprintSpace != "" {
			s.conv.SprintSpace = conv.SprintSpace
		}
		if conv.SprintFolderKeyword != "" {
			s.conv.SprintFolderKeyword = conv.SprintFolderKeyword
		}
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTracker emits a task_created event for every created task.
func WithTracker(t Tracker) ServiceOption {
	return func(s *Service) { s.tracker = t }
}

// NewService creates a Service on top of client.
func NewService(client *Client, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		conv:   DefaultConventions(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Conventions returns the effective naming conventions.
func (s *Service) Conventions() Conventions {
	return s.conv
}
