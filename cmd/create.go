package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/rocketdigital/taskpilot/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// createFlags holds the create command flags.
type createFlags struct {
	spaceID     string
	fromFile    string
	name        string
	description string
	taskType    string
	priority    string
	estimate    int
	assignees   []int64
	sprintID    string
	epicID      string
	status      string
	tags        []string
	due         string
}

var createOpts createFlags

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task in ClickUp",
	Long: `Create a task in a ClickUp space.

The task is built from flags, or from a JSON file holding either a task
(taskData) or a suggestion as printed by "taskpilot suggest -o json".
Flags override values read from the file.

The task goes to the epic list when --epic is set, otherwise to the first
list of the space, and is then moved into --sprint if given.

Examples:
  taskpilot create --space-id 90123 --name "Banner de rebajas" --priority high --estimate 90
  taskpilot suggest "..." -o json > s.json && taskpilot create --space-id 90123 --file s.json`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	f := createCmd.Flags()
	f.StringVar(&createOpts.spaceID, "space-id", "", "destination space (required)")
	f.StringVarP(&createOpts.fromFile, "file", "f", "", "JSON task or suggestion to submit")
	f.StringVar(&createOpts.name, "name", "", "task name")
	f.StringVar(&createOpts.description, "description", "", "markdown description")
	f.StringVar(&createOpts.taskType, "type", "", "task, bug or meet")
	f.StringVar(&createOpts.priority, "priority", "", "urgent, high, normal or low")
	f.IntVar(&createOpts.estimate, "estimate", 0, "time estimate in minutes")
	f.Int64SliceVar(&createOpts.assignees, "assignee", nil, "assignee user id (repeatable)")
	f.StringVar(&createOpts.sprintID, "sprint", "", "sprint list id")
	f.StringVar(&createOpts.epicID, "epic", "", "epic list id")
	f.StringVar(&createOpts.status, "status", "", "status label")
	f.StringSliceVar(&createOpts.tags, "tag", nil, "tag (repeatable)")
	f.StringVar(&createOpts.due, "due", "", "due date, YYYY-MM-DD")
	_ = createCmd.MarkFlagRequired("space-id")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	task, err := buildTaskData(afero.NewOsFs(), createOpts, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if err := validate.Struct(task); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	tel := newTelemetry(cfg)
	defer func() { _ = tel.Close() }()
	svc, err := newClickUpService(cfg, tel)
	if err != nil {
		return err
	}

	created, err := svc.CreateTask(cmd.Context(), createOpts.spaceID, task)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, outputFormat, created); done {
		return err
	}
	ui.RenderCreatedTask(out, created)
	return nil
}

// buildTaskData merges the file (if any) with the flags that were set.
func buildTaskData(fs afero.Fs, opts createFlags, changed func(string) bool) (clickup.TaskData, error) {
	var task clickup.TaskData
	if opts.fromFile != "" {
		raw, err := afero.ReadFile(fs, opts.fromFile)
		if err != nil {
			return task, fmt.Errorf("read task file: %w", err)
		}
		if task, err = decodeTaskFile(raw); err != nil {
			return task, fmt.Errorf("parse task file %s: %w", opts.fromFile, err)
		}
	}

	if changed("name") {
		task.Name = opts.name
	}
	if changed("description") {
		task.Description = opts.description
	}
	if changed("type") {
		task.Type = opts.taskType
	}
	if changed("priority") {
		task.Priority = opts.priority
	}
	if changed("estimate") {
		task.TimeEstimate = opts.estimate
	}
	if changed("assignee") {
		task.Assignees = opts.assignees
	}
	if changed("sprint") {
		task.SprintID = opts.sprintID
	}
	if changed("epic") {
		task.EpicID = opts.epicID
	}
	if changed("status") {
		task.Status = opts.status
	}
	if changed("tag") {
		task.Tags = opts.tags
	}
	if changed("due") {
		due, err := time.ParseInLocation(time.DateOnly, opts.due, time.Local)
		if err != nil {
			return task, fmt.Errorf("invalid --due %q: want YYYY-MM-DD", opts.due)
		}
		ms := due.UnixMilli()
		task.DueDate = &ms
	}
	return task, nil
}

// decodeTaskFile accepts a TaskData object, a {taskData: ...} request body
// or a suggestion, whose suggested* fields map onto the task.
func decodeTaskFile(raw []byte) (clickup.TaskData, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return clickup.TaskData{}, err
	}

	if inner, ok := probe["taskData"]; ok {
		var task clickup.TaskData
		err := json.Unmarshal(inner, &task)
		return task, err
	}

	if !hasAnyKey(probe, "suggestedEpicId", "suggestedSprintId", "suggestedAssigneeIds", "suggestedStatus", "suggestedSpaceId") {
		var task clickup.TaskData
		err := json.Unmarshal(raw, &task)
		return task, err
	}

	var s suggest.TaskSuggestion
	if err := json.Unmarshal(raw, &s); err != nil {
		return clickup.TaskData{}, err
	}
	return taskFromSuggestion(&s), nil
}

func hasAnyKey(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// taskFromSuggestion is the review step with every suggestion accepted.
func taskFromSuggestion(s *suggest.TaskSuggestion) clickup.TaskData {
	task := clickup.TaskData{
		Name:         s.Name,
		Description:  s.Description,
		Type:         s.Type,
		Priority:     s.Priority,
		TimeEstimate: s.TimeEstimate,
		Assignees:    s.SuggestedAssigneeIDs,
		Tags:         s.Tags,
	}
	if s.SuggestedSprintID != nil {
		task.SprintID = *s.SuggestedSprintID
	}
	if s.SuggestedEpicID != nil {
		task.EpicID = *s.SuggestedEpicID
	}
	if s.SuggestedStatus != nil {
		task.Status = *s.SuggestedStatus
	}
	return task
}
