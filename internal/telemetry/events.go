package telemetry

// Event names
const (
	EventSuggestionGenerated = "suggestion_generated"
	EventSuggestionFailed    = "suggestion_failed"
	EventTaskCreated         = "task_created"
	EventServerStarted       = "server_started"
)
