package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key identifies a user-facing message.
type Key string

const (
	MissingAIKey           Key = "missing_ai_key"
	MissingClickUpToken    Key = "missing_clickup_token"
	InvalidRequestBody     Key = "invalid_request_body"
	MissingDescription     Key = "missing_description"
	WorkspaceIDRequired    Key = "workspace_id_required"
	SpaceIDRequired        Key = "space_id_required"
	CreateTaskFieldsNeeded Key = "create_task_fields_required"
	InvalidTaskData        Key = "invalid_task_data"
	SuggestFailed          Key = "suggest_failed"
	EmptyAIResponse        Key = "empty_ai_response"
	UnparsableAIResponse   Key = "unparsable_ai_response"
	InvalidSuggestion      Key = "invalid_suggestion"
	WorkspaceNotFound      Key = "workspace_not_found"
	WorkspaceFailed        Key = "workspace_failed"
	SpacesFailed           Key = "spaces_failed"
	NoDestinationList      Key = "no_destination_list"
	TaskCreationFailed     Key = "task_creation_failed"
	TaskCreationUpstream   Key = "task_creation_failed_upstream"
	Internal               Key = "internal"
)

var catalog = map[Key]map[language.Tag]string{
	MissingAIKey: {
		language.Spanish: "API key de IA no configurada. Por favor, configura %s en .env.local",
		language.English: "AI API key not configured. Please set %s in .env.local",
	},
	MissingClickUpToken: {
		language.Spanish: "ClickUp API token no configurado. Por favor, configura %s en .env.local",
		language.English: "ClickUp API token not configured. Please set %s in .env.local",
	},
	InvalidRequestBody: {
		language.Spanish: "El cuerpo de la petición no es un JSON válido",
		language.English: "The request body is not valid JSON",
	},
	MissingDescription: {
		language.Spanish: "Por favor, describe la tarea o adjunta archivos",
		language.English: "Please describe the task or attach files",
	},
	WorkspaceIDRequired: {
		language.Spanish: "workspaceId es requerido",
		language.English: "workspaceId is required",
	},
	SpaceIDRequired: {
		language.Spanish: "spaceId es requerido",
		language.English: "spaceId is required",
	},
	CreateTaskFieldsNeeded: {
		language.Spanish: "spaceId y taskData son requeridos",
		language.English: "spaceId and taskData are required",
	},
	InvalidTaskData: {
		language.Spanish: "Datos de la tarea inválidos: %s",
		language.English: "Invalid task data: %s",
	},
	SuggestFailed: {
		language.Spanish: "Error al generar sugerencias con IA",
		language.English: "Failed to generate AI suggestions",
	},
	EmptyAIResponse: {
		language.Spanish: "La IA no devolvió ninguna respuesta",
		language.English: "The AI returned no response",
	},
	UnparsableAIResponse: {
		language.Spanish: "No se pudo parsear la respuesta de la IA",
		language.English: "Could not parse the AI response",
	},
	InvalidSuggestion: {
		language.Spanish: "La sugerencia de la IA no es válida: %s",
		language.English: "The AI suggestion is invalid: %s",
	},
	WorkspaceNotFound: {
		language.Spanish: "Workspace \"%s\" no encontrado",
		language.English: "Workspace \"%s\" not found",
	},
	WorkspaceFailed: {
		language.Spanish: "No se pudo obtener el workspace de %s",
		language.English: "Could not load the %s workspace",
	},
	SpacesFailed: {
		language.Spanish: "No se pudieron obtener los proyectos",
		language.English: "Could not load the projects",
	},
	NoDestinationList: {
		language.Spanish: "No se encontraron listas en el proyecto seleccionado. Crea una lista en el proyecto de ClickUp e inténtalo de nuevo",
		language.English: "No lists were found in the selected project. Create a list in the ClickUp project and try again",
	},
	TaskCreationFailed: {
		language.Spanish: "No se pudo crear la tarea en ClickUp",
		language.English: "Could not create the task in ClickUp",
	},
	TaskCreationUpstream: {
		language.Spanish: "No se pudo crear la tarea en ClickUp: %s",
		language.English: "Could not create the task in ClickUp: %s",
	},
	Internal: {
		language.Spanish: "Error interno del servidor",
		language.English: "Internal server error",
	},
}

func init() {
	for key, translations := range catalog {
		for tag, text := range translations {
			_ = message.SetString(tag, string(key), text)
		}
	}
}
