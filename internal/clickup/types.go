package clickup

import "encoding/json"

// Workspace is a ClickUp team.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Space is a project or client.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder groups lists inside a space.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is the leaf container that holds tasks.
type List struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Sprint is a list inside the sprint folder of the sprint space.
type Sprint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Epic is any list reachable from a space.
type Epic struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Member is a workspace user.
type Member struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Color          string `json:"color,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Status is a workflow status of a list.
type Status struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Color      string `json:"color,omitempty"`
	OrderIndex int    `json:"orderindex"`
	Type       string `json:"type,omitempty"`
}

// TaskData is a reviewed task ready for submission. TimeEstimate is in
// minutes; DueDate is epoch milliseconds.
type TaskData struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Type         string   `json:"type" validate:"omitempty,oneof=task bug meet"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	TimeEstimate int      `json:"timeEstimate" validate:"gte=0"`
	Assignees    []int64  `json:"assignees,omitempty"`
	SprintID     string   `json:"sprintId,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	EpicID       string   `json:"epicId,omitempty"`
	Status       string   `json:"status,omitempty"`
	DueDate      *int64   `json:"dueDate,omitempty"`
}

// TaskPayload is the body of POST /list/{id}/task.
type TaskPayload struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Priority     *int     `json:"priority,omitempty"`
	TimeEstimate int64    `json:"time_estimate"`
	Tags         []string `json:"tags"`
	Assignees    []int64  `json:"assignees,omitempty"`
	Status       string   `json:"status,omitempty"`
	DueDate      *int64   `json:"due_date,omitempty"`
}

// CreatedTask is the task returned by ClickUp. Raw keeps the full response
// so callers can pass it through unchanged.
type CreatedTask struct {
	ID  string          `json:"id"`
	URL string          `json:"url,omitempty"`
	Raw json.RawMessage `json:"-"`
}

// MarshalJSON writes the untouched ClickUp response.
func (t CreatedTask) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	type plain CreatedTask
	return json.Marshal(plain(t))
}

// API response envelopes.

type errorResponse struct {
	Err   string `json:"err"`
	Error string `json:"error"`
	Code  string `json:"ECODE"`
}

type teamsResponse struct {
	Teams []Workspace `json:"teams"`
}

type teamResponse struct {
	Team struct {
		ID      string `json:"id"`
		Members []struct {
			User Member `json:"user"`
		} `json:"members"`
	} `json:"team"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type listDetailResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Statuses []Status `json:"statuses"`
}
