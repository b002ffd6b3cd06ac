package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// priorityLevels maps priority names to ClickUp's 1 (urgent) .. 4 (low) scale.
var priorityLevels = map[string]int{
	"urgent": 1,
	"high":   2,
	"normal": 3,
	"low":    4,
}

// msPerMinute converts minutes to ClickUp's millisecond time estimates.
const msPerMinute = 60_000

// ResolveDestinationList picks the list a new task is created in, in order:
// the epic list, the first direct list of the space, the first list of the
// first folder that has one. Each step runs only when the previous one
// found nothing.
func (s *Service) ResolveDestinationList(ctx context.Context, spaceID string, task TaskData) (string, error) {
	if task.EpicID != "" {
		return task.EpicID, nil
	}

	lists, err := s.spaceLists(ctx, spaceID)
	if err != nil {
		return "", err
	}
	if len(lists) > 0 {
		return lists[0].ID, nil
	}

	folders, err := s.folders(ctx, spaceID)
	if err != nil {
		return "", err
	}
	for _, f := range folders {
		lists, err := s.folderLists(ctx, f.ID)
		if err != nil {
			return "", err
		}
		if len(lists) > 0 {
			return lists[0].ID, nil
		}
	}

	return "", ErrNoDestinationList
}

// BuildTaskPayload maps task to the ClickUp create-task body. This is the
// only place minutes become milliseconds. Optional fields are omitted, not
// sent empty, and the epic is never sent as parent: it is the destination.
func BuildTaskPayload(task TaskData) TaskPayload {
	payload := TaskPayload{
		Name:         task.Name,
		Description:  task.Description,
		TimeEstimate: int64(task.TimeEstimate) * msPerMinute,
		Tags:         task.Tags,
		Status:       task.Status,
		DueDate:      task.DueDate,
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	if level, ok := priorityLevels[task.Priority]; ok {
		payload.Priority = &level
	}
	if len(task.Assignees) > 0 {
		payload.Assignees = task.Assignees
	}
	return payload
}

// CreateTask creates task in spaceID and, when a sprint is set, moves it
// into the sprint list. A failed sprint move is logged and the created task
// is still returned.
func (s *Service) CreateTask(ctx context.Context, spaceID string, task TaskData) (*CreatedTask, error) {
	listID, err := s.ResolveDestinationList(ctx, spaceID, task)
	if errors.Is(err, ErrNoDestinationList) {
		return nil, err
	}
	if err != nil {
		return nil, &TaskCreationError{Err: fmt.Errorf("resolve destination list: %w", err)}
	}

	payload := BuildTaskPayload(task)
	s.log.Debug("creating clickup task", "list_id", listID, "name", payload.Name, "time_estimate_ms", payload.TimeEstimate)

	var raw json.RawMessage
	if err := s.client.Post(ctx, "/list/"+url.PathEscape(listID)+"/task", payload, &raw); err != nil {
		return nil, &TaskCreationError{ListID: listID, Err: err}
	}

	created := &CreatedTask{Raw: raw}
	if err := json.Unmarshal(raw, created); err != nil {
		return nil, &TaskCreationError{ListID: listID, Err: fmt.Errorf("%w: decode created task: %v", ErrUpstreamUnavailable, err)}
	}
	created.Raw = raw

	switch {
	case task.SprintID == "":
	case created.ID == "":
		s.log.Warn("skipping sprint move: created task has no id", "sprint_id", task.SprintID, "list_id", listID)
	default:
		if err := s.moveToSprint(ctx, task.SprintID, created.ID); err != nil {
			s.log.Warn(ErrSprintMoveFailed.Error(), "task_id", created.ID, "sprint_id", task.SprintID, "error", err)
		}
	}

	s.log.Info("clickup task created", "task_id", created.ID, "list_id", listID, "space_id", spaceID)
	if s.tracker != nil {
		s.tracker.Track("task_created", map[string]any{
			"space_id":   spaceID,
			"has_sprint": task.SprintID != "",
			"has_epic":   task.EpicID != "",
			"priority":   task.Priority,
		})
	}
	return created, nil
}

func (s *Service) moveToSprint(ctx context.Context, sprintID, taskID string) error {
	path := fmt.Sprintf("/list/%s/task/%s", url.PathEscape(sprintID), url.PathEscape(taskID))
	if err := s.client.Post(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrSprintMoveFailed, err)
	}
	return nil
}
