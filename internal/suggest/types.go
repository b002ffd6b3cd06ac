// Package suggest turns a free-text task description into a structured
// TaskSuggestion by prompting a chat model and parsing its JSON reply.
package suggest

// Task types accepted by ClickUp custom task types.
const (
	TypeTask = "task"
	TypeBug  = "bug"
	TypeMeet = "meet"
)

// Priorities, ordered from most to least urgent.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// SpaceRef is a project/client the AI may suggest.
type SpaceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MemberRef is a team member the AI may suggest as assignee.
type MemberRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DisplayName is the username, falling back to the email.
func (m MemberRef) DisplayName() string {
	if m.Username != "" {
		return m.Username
	}
	return m.Email
}

// SprintRef is a sprint list the AI may suggest.
type SprintRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EpicRef is an epic list the AI may suggest.
type EpicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatusRef is a workflow status; Status is the label the AI must copy verbatim.
type StatusRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TaskFormData is the input to the engine. The reference lists are optional
// context and are never modified.
type TaskFormData struct {
	Description       string      `json:"description" validate:"required"`
	AvailableSpaces   []SpaceRef  `json:"availableSpaces,omitempty"`
	AvailableMembers  []MemberRef `json:"availableMembers,omitempty"`
	AvailableSprints  []SprintRef `json:"availableSprints,omitempty"`
	AvailableEpics    []EpicRef   `json:"availableEpics,omitempty"`
	AvailableStatuses []StatusRef `json:"availableStatuses,omitempty"`
}

// TaskSuggestion is the structured proposal returned by the AI.
// TimeEstimate is in minutes.
type TaskSuggestion struct {
	Name                 string   `json:"name" validate:"required,nonempty"`
	Description          string   `json:"description"`
	Type                 string   `json:"type" validate:"required,oneof=task bug meet"`
	Priority             string   `json:"priority" validate:"required,oneof=urgent high normal low"`
	TimeEstimate         int      `json:"timeEstimate" validate:"gt=0"`
	Tags                 []string `json:"tags"`
	SuggestedSpaceID     *string  `json:"suggestedSpaceId"`
	SuggestedAssigneeIDs []int64  `json:"suggestedAssigneeIds"`
	SuggestedSprintID    *string  `json:"suggestedSprintId"`
	SuggestedEpicID      *string  `json:"suggestedEpicId"`
	SuggestedStatus      *string  `json:"suggestedStatus"`
}
