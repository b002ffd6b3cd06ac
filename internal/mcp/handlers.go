package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rocketdigital/taskpilot/internal/attachment"
	"github.com/rocketdigital/taskpilot/internal/logger"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

var validate = validator.New()

// HandleSuggestTask validates params and asks sg for a suggestion.
// Engine failures are reported in the result so the calling model can
// see them; the returned error is reserved for encoding failures.
func HandleSuggestTask(ctx context.Context, sg Suggester, params SuggestTaskParams) (*ToolResult, error) {
	result := &ToolResult{Tool: ToolSuggestTask}

	if strings.TrimSpace(params.Description) == "" && len(params.Attachments) == 0 {
		result.Error = FormatValidationError("description", "describe the task or attach files")
		return result, nil
	}
	for i, f := range params.Attachments {
		if err := validate.Struct(f); err != nil {
			result.Error = FormatValidationError(fmt.Sprintf("attachments[%d].name", i), "is required")
			return result, nil
		}
	}

	data := suggest.TaskFormData{
		Description:       attachment.AppendToDescription(params.Description, params.Attachments),
		AvailableSpaces:   params.AvailableSpaces,
		AvailableMembers:  params.AvailableMembers,
		AvailableSprints:  params.AvailableSprints,
		AvailableEpics:    params.AvailableEpics,
		AvailableStatuses: params.AvailableStatuses,
	}
	logger.SetLastDescription(data.Description)

	suggestion, err := sg.Suggest(ctx, data)
	if err != nil {
		result.Error = FormatError(err.Error())
		return result, nil
	}

	content, err := json.MarshalIndent(suggestion, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode suggestion: %w", err)
	}
	result.Content = string(content)
	return result, nil
}

// HandleCreateTask validates params and submits the task to ClickUp.
func HandleCreateTask(ctx context.Context, tc TaskCreator, params CreateTaskParams) (*ToolResult, error) {
	result := &ToolResult{Tool: ToolCreateTask}

	if params.SpaceID == "" {
		result.Error = FormatValidationError("spaceId", "is required")
		return result, nil
	}
	if params.TaskData == nil {
		result.Error = FormatValidationError("taskData", "is required")
		return result, nil
	}
	if err := validate.Struct(params.TaskData); err != nil {
		var field, msg string
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = "taskData." + verrs[0].Field()
			msg = fmt.Sprintf("failed %q validation", verrs[0].Tag())
		} else {
			field, msg = "taskData", err.Error()
		}
		result.Error = FormatValidationError(field, msg)
		return result, nil
	}

	task, err := tc.CreateTask(ctx, params.SpaceID, *params.TaskData)
	if err != nil {
		result.Error = FormatError(err.Error())
		return result, nil
	}

	content, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode created task: %w", err)
	}
	result.Content = string(content)
	return result, nil
}
