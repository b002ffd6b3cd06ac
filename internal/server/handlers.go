package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rocketdigital/taskpilot/internal/attachment"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/i18n"
	"github.com/rocketdigital/taskpilot/internal/logger"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/rocketdigital/taskpilot/internal/telemetry"
)

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// maxBodyBytes bounds request bodies; attachments travel inline.
const maxBodyBytes = 10 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// handleSuggest
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, r, i18n.InvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Description) == "" && len(req.Attachments) == 0 {
		badRequest(w, r, i18n.MissingDescription)
		return
	}
	for _, f := range req.Attachments {
		if err := validate.Struct(f); err != nil {
			badRequest(w, r, i18n.InvalidRequestBody)
			return
		}
	}

	engine, err := s.suggester(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.SuggestFailed, clickup.Conventions{})
		return
	}

	data := req.TaskFormData
	data.Description = attachment.AppendToDescription(req.Description, req.Attachments)
	logger.SetLastDescription(data.Description)

	suggestion, err := engine.Suggest(r.Context(), data)
	if err != nil {
		s.telemetry.Track(telemetry.EventSuggestionFailed, telemetry.Properties{"reason": failureReason(err)})
		s.fail(w, r, err, i18n.SuggestFailed, clickup.Conventions{})
		return
	}

	s.telemetry.Track(telemetry.EventSuggestionGenerated, telemetry.Properties{
		"attachments": len(req.Attachments),
		"type":        suggestion.Type,
		"priority":    suggestion.Priority,
	})
	writeAPIJSON(w, suggestion)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, suggest.ErrEmptyResponse):
		return "empty"
	case errors.Is(err, suggest.ErrUnparsableResponse):
		return "unparsable"
	case errors.Is(err, suggest.ErrInvalidSuggestion):
		return "invalid"
	default:
		return "completion"
	}
}

// handleWorkspace
func (s *Server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	cu, err := s.clickup(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.Internal, clickup.Conventions{})
		return
	}
	ws, err := cu.FindWorkspace(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.WorkspaceFailed, cu.Conventions())
		return
	}
	writeAPIJSON(w, ws)
}

// handleSpaces
func (s *Server) handleSpaces(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.URL.Query().Get("workspaceId")
	if workspaceID == "" {
		badRequest(w, r, i18n.WorkspaceIDRequired)
		return
	}
	cu, err := s.clickup(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.Internal, clickup.Conventions{})
		return
	}
	spaces, err := cu.ListSpaces(r.Context(), workspaceID)
	if err != nil {
		s.fail(w, r, err, i18n.SpacesFailed, cu.Conventions())
		return
	}
	writeAPIJSON(w, spaces)
}

// handleSprints
func (s *Server) handleSprints(w http.ResponseWriter, r *http.Request) {
	s.handleWorkspaceList(w, r, func(cu ClickUp, id string) any { return cu.ListSprints(r.Context(), id) })
}

// handleMembers
func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	s.handleWorkspaceList(w, r, func(cu ClickUp, id string) any { return cu.ListMembers(r.Context(), id) })
}

// handleEpics
func (s *Server) handleEpics(w http.ResponseWriter, r *http.Request) {
	s.handleSpaceList(w, r, func(cu ClickUp, id string) any { return cu.ListEpics(r.Context(), id) })
}

// handleStatuses
func (s *Server) handleStatuses(w http.ResponseWriter, r *http.Request) {
	s.handleSpaceList(w, r, func(cu ClickUp, id string) any { return cu.ListStatuses(r.Context(), id) })
}

// handleWorkspaceList serves a best-effort listing keyed by ?workspaceId=.
func (s *Server) handleWorkspaceList(w http.ResponseWriter, r *http.Request, list func(ClickUp, string) any) {
	id := r.URL.Query().Get("workspaceId")
	if id == "" {
		badRequest(w, r, i18n.WorkspaceIDRequired)
		return
	}
	s.serveList(w, r, id, list)
}

// handleSpaceList serves a best-effort listing keyed by ?spaceId=.
func (s *Server) handleSpaceList(w http.ResponseWriter, r *http.Request, list func(ClickUp, string) any) {
	id := r.URL.Query().Get("spaceId")
	if id == "" {
		badRequest(w, r, i18n.SpaceIDRequired)
		return
	}
	s.serveList(w, r, id, list)
}

func (s *Server) serveList(w http.ResponseWriter, r *http.Request, id string, list func(ClickUp, string) any) {
	cu, err := s.clickup(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.Internal, clickup.Conventions{})
		return
	}
	writeAPIJSON(w, list(cu, id))
}

// handleCreateTask
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, r, i18n.InvalidRequestBody)
		return
	}
	if req.SpaceID == "" || req.TaskData == nil {
		badRequest(w, r, i18n.CreateTaskFieldsNeeded)
		return
	}
	if err := validate.Struct(req.TaskData); err != nil {
		badRequest(w, r, i18n.InvalidTaskData, describeValidation(err))
		return
	}

	cu, err := s.clickup(r.Context())
	if err != nil {
		s.fail(w, r, err, i18n.TaskCreationFailed, clickup.Conventions{})
		return
	}
	task, err := cu.CreateTask(r.Context(), req.SpaceID, *req.TaskData)
	if err != nil {
		s.fail(w, r, err, i18n.TaskCreationFailed, cu.Conventions())
		return
	}
	writeAPIJSON(w, task)
}

// describeValidation lists the failing fields of a validator error.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(parts, ", ")
}

// handleHealth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, HealthResponse{Status: "ok", Version: s.version})
}

func writeAPIJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
