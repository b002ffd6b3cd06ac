package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/rocketdigital/taskpilot/internal/logger"
	"github.com/rocketdigital/taskpilot/internal/utils"
)

// Engine generates task suggestions. It holds no per-request state and is
// safe for concurrent use if the underlying chat model is.
type Engine struct {
	chatModel model.BaseChatModel
	modelID   string
	strict    bool
	log       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictValidation rejects suggestions with a blank name, unknown
// type/priority or a non-positive estimate.
func WithStrictValidation(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithModelID records the model name, used for usage/cost logging only.
func WithModelID(id string) Option {
	return func(e *Engine) { e.modelID = id }
}

// NewEngine creates an Engine on top of an Eino chat model.
func NewEngine(chatModel model.BaseChatModel, opts ...Option) *Engine {
	e := &Engine{chatModel: chatModel, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Suggest sends one prompt built from data and parses the reply.
func (e *Engine) Suggest(ctx context.Context, data TaskFormData) (*TaskSuggestion, error) {
	prompt := BuildPrompt(data)
	logger.SetLastPrompt(prompt)

	e.log.Debug("requesting task suggestion",
		"prompt_tokens_est", llm.EstimateTokens(prompt),
		"spaces", len(data.AvailableSpaces),
		"members", len(data.AvailableMembers),
		"sprints", len(data.AvailableSprints),
		"epics", len(data.AvailableEpics),
		"statuses", len(data.AvailableStatuses),
	)

	resp, err := e.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, ErrEmptyResponse
	}
	e.logUsage(resp)

	suggestion, err := utils.ParseJSONObject[TaskSuggestion](resp.Content)
	if err != nil {
		e.log.Warn("unparsable AI response", "error", err, "excerpt", utils.Truncate(resp.Content, 200))
		if errors.Is(err, utils.ErrNoJSONObject) {
			return nil, ErrUnparsableResponse
		}
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	e.normalizeStatus(&suggestion, data.AvailableStatuses)

	if e.strict {
		if result := suggestion.Validate(); !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSuggestion, result.ErrorSummary())
		}
	}
	return &suggestion, nil
}

// normalizeStatus drops a suggestedStatus that is not an exact copy of one
// of the available labels, and any status when none were offered.
func (e *Engine) normalizeStatus(s *TaskSuggestion, available []StatusRef) {
	if s.SuggestedStatus == nil {
		return
	}
	for _, st := range available {
		if st.Status == *s.SuggestedStatus {
			return
		}
	}
	e.log.Info("dropping suggested status not in available statuses", "status", *s.SuggestedStatus)
	s.SuggestedStatus = nil
}

func (e *Engine) logUsage(resp *schema.Message) {
	if resp.ResponseMeta == nil || resp.ResponseMeta.Usage == nil {
		return
	}
	usage := resp.ResponseMeta.Usage
	e.log.Debug("AI usage",
		"model", e.modelID,
		"input_tokens", usage.PromptTokens,
		"output_tokens", usage.CompletionTokens,
		"cost_usd", llm.CalculateCost(e.modelID, usage.PromptTokens, usage.CompletionTokens),
	)
}
