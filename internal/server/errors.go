package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/rocketdigital/taskpilot/internal/i18n"
	"github.com/rocketdigital/taskpilot/internal/suggest"
)

// apiError is an error translated for the client.
type apiError struct {
	status  int
	message string
}

// translate maps a core error to a status and a localized message.
// Errors outside the taxonomy get the route's fallback message.
func translate(loc *i18n.Localizer, err error, fallback i18n.Key, conv clickup.Conventions) apiError {
	var missing *config.MissingError
	var creation *clickup.TaskCreationError

	switch {
	case errors.As(err, &missing):
		key := i18n.MissingAIKey
		if missing.Key == "clickup.token" {
			key = i18n.MissingClickUpToken
		}
		return apiError{http.StatusInternalServerError, loc.T(key, missing.Env)}
	case errors.As(err, &creation):
		if msg := creation.UpstreamMessage(); msg != "" {
			return apiError{http.StatusInternalServerError, loc.T(i18n.TaskCreationUpstream, msg)}
		}
		return apiError{http.StatusInternalServerError, loc.T(i18n.TaskCreationFailed)}
	case errors.Is(err, clickup.ErrNoDestinationList):
		return apiError{http.StatusInternalServerError, loc.T(i18n.NoDestinationList)}
	case errors.Is(err, clickup.ErrWorkspaceNotFound):
		return apiError{http.StatusInternalServerError, loc.T(i18n.WorkspaceNotFound, conv.WorkspaceName)}
	case errors.Is(err, suggest.ErrEmptyResponse):
		return apiError{http.StatusInternalServerError, loc.T(i18n.EmptyAIResponse)}
	case errors.Is(err, suggest.ErrUnparsableResponse):
		return apiError{http.StatusInternalServerError, loc.T(i18n.UnparsableAIResponse)}
	case errors.Is(err, suggest.ErrInvalidSuggestion):
		detail := strings.TrimPrefix(err.Error(), suggest.ErrInvalidSuggestion.Error()+": ")
		return apiError{http.StatusInternalServerError, loc.T(i18n.InvalidSuggestion, detail)}
	default:
		if fallback == i18n.WorkspaceFailed {
			return apiError{http.StatusInternalServerError, loc.T(fallback, conv.WorkspaceName)}
		}
		return apiError{http.StatusInternalServerError, loc.T(fallback)}
	}
}

func localizer(r *http.Request) *i18n.Localizer {
	return i18n.FromAcceptLanguage(r.Header.Get("Accept-Language"))
}

// fail logs err and writes its translated form.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallback i18n.Key, conv clickup.Conventions) {
	e := translate(localizer(r), err, fallback, conv)
	s.log.Error("request failed",
		"request_id", requestIDFrom(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	writeAPIError(w, e.status, e.message)
}

// badRequest writes a 400 with a localized message.
func badRequest(w http.ResponseWriter, r *http.Request, key i18n.Key, args ...any) {
	writeAPIError(w, http.StatusBadRequest, localizer(r).T(key, args...))
}
