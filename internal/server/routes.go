package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/ai/suggest", s.handleSuggest)

	mux.HandleFunc("GET /api/clickup/workspace", s.handleWorkspace)
	mux.HandleFunc("GET /api/clickup/spaces", s.handleSpaces)
	mux.HandleFunc("GET /api/clickup/sprints", s.handleSprints)
	mux.HandleFunc("GET /api/clickup/members", s.handleMembers)
	mux.HandleFunc("GET /api/clickup/epics", s.handleEpics)
	mux.HandleFunc("GET /api/clickup/statuses", s.handleStatuses)
	mux.HandleFunc("POST /api/clickup/create-task", s.handleCreateTask)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// outermost first
	return s.requestID(s.recoverer(s.accessLog(s.corsMiddleware(mux))))
}
