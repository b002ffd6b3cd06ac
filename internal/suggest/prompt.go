package suggest

import (
	"fmt"
	"strings"
)

const promptPreamble = `Actúa como un Product Manager senior especializado en proyectos Shopify (desarrollo de themes, migraciones, custom apps, etc.) e integraciones entre Shopify y terceros (e.g. ERP, CRMs, etc.).

Dado el siguiente input, genera UNA tarea clara y bien estructurada para el equipo técnico.

TEXTO DE ENTRADA DEL USUARIO:
`

const promptInstructions = `

INSTRUCCIONES:
1. **Título de la tarea**: Claro, conciso y accionable (máx 80 caracteres)

2. **Descripción**: Debe incluir en formato markdown:
   - **Objetivo**: Qué se quiere lograr
   - **Criterios de Aceptación**: Lista específica y verificable (mínimo 3)
   - **Consideraciones Técnicas**: APIs de Shopify relevantes (Admin API, Storefront API, GraphQL, Liquid, Webhooks, etc.)
   - **Dependencias**: Si hay algo que debe hacerse antes

3. **Cliente/Proyecto sugerido**: Basándote en el input y el listado de proyectos disponibles, sugiere el ID del proyecto más apropiado. Si no estás seguro o no hay suficiente información, NO sugieras ninguno (deja el campo null).

4. **Tipo de tarea**:
   - "task": Desarrollo, implementación, features
   - "bug": Errores, problemas que arreglar
   - "meet": Reuniones, llamadas, sesiones de planificación

5. **Prioridad**: Determina según urgencia e impacto
   - "urgent": Crítico, bloquea el negocio o desarrollo
   - "high": Importante, debe hacerse pronto
   - "normal": Tarea estándar
   - "low": Puede esperar, mejoras menores

6. **Estimación**: Tiempo realista en MINUTOS. Considera:
   - Research/análisis: 30-60 min
   - Tareas pequeñas (cambios menores): 60-120 min
   - Tareas medianas (features simples): 120-240 min
   - Tareas grandes (features complejas): 240-480 min
   - Bugs simples: 30-90 min
   - Bugs complejos: 120-240 min
   - Reuniones: 30-60 min

7. **Asignación sugerida**: Si en el input se mencionan nombres, emails o roles específicos (e.g. "el de frontend", "diseño"), sugiere los IDs de los miembros del equipo correspondientes. Si no se menciona nadie, deja el array vacío.

8. **Sprint sugerido**: Si en el input se menciona un sprint específico o una fecha que coincide con un sprint, sugiere el ID del sprint. Si no, deja null.

9. **Épica sugerida**: Solo si el input menciona explícitamente una épica o la relación con una de las épicas disponibles es evidente, sugiere su ID. Si no, deja null.

10. **Estado sugerido**: Elige de los estados disponibles el que mejor corresponda a "to do" / "to-do" (pendiente). Copia el nombre EXACTAMENTE como aparece en la lista (mismas mayúsculas y espacios). Si no hay estados disponibles, deja null.

11. **Tags**: Palabras clave relevantes (shopify, liquid, graphql, theme, app, migration, integration, frontend, backend, etc.)

RESPONDE ÚNICAMENTE CON UN JSON (sin markdown, sin explicaciones, sin texto adicional) con esta estructura EXACTA:

{
  "name": "Título claro y accionable de la tarea",
  "description": "## Objetivo\\n[Qué se quiere lograr]\\n\\n## Criterios de Aceptación\\n- [ ] Criterio específico 1\\n- [ ] Criterio específico 2\\n- [ ] Criterio específico 3\\n\\n## Consideraciones Técnicas\\n[APIs de Shopify, endpoints, webhooks, etc.]\\n\\n## Dependencias\\n[Si aplica]",
  "type": "task",
  "priority": "normal",
  "timeEstimate": 120,
  "tags": ["shopify", "tag1", "tag2"],
  "suggestedSpaceId": null,
  "suggestedAssigneeIds": [],
  "suggestedSprintId": null,
  "suggestedEpicId": null,
  "suggestedStatus": null
}

REGLAS IMPORTANTES:
- timeEstimate SIEMPRE en MINUTOS (nunca en horas)
- Si no estás seguro del space, assignees, sprint, épica o estado, usa null o array vacío
- Solo sugiere assignees si se mencionan en el input
- Solo sugiere sprint si se menciona explícitamente
- suggestedStatus debe ser uno de los estados disponibles, copiado literalmente
- La descripción debe ser profesional y en español
- Usa formato markdown para mejor legibilidad
- Sé específico con tecnologías de Shopify cuando aplique`

// Context block headings.
const (
	headingSpaces   = "PROYECTOS/CLIENTES DISPONIBLES EN CLICKUP:"
	headingMembers  = "MIEMBROS DEL EQUIPO DISPONIBLES:"
	headingSprints  = "SPRINTS DISPONIBLES:"
	headingEpics    = "ÉPICAS DISPONIBLES:"
	headingStatuses = "ESTADOS DISPONIBLES:"
)

type contextEntry struct {
	name string
	id   string
}

// BuildPrompt renders the full prompt for data. Context blocks are emitted
// only for non-empty lists, one "- {name} (ID: {id})" line per entry.
func BuildPrompt(data TaskFormData) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString(data.Description)

	spaces := make([]contextEntry, 0, len(data.AvailableSpaces))
	for _, s := range data.AvailableSpaces {
		spaces = append(spaces, contextEntry{name: s.Name, id: s.ID})
	}
	writeContextBlock(&b, headingSpaces, spaces)

	members := make([]contextEntry, 0, len(data.AvailableMembers))
	for _, m := range data.AvailableMembers {
		members = append(members, contextEntry{name: m.DisplayName(), id: fmt.Sprint(m.ID)})
	}
	writeContextBlock(&b, headingMembers, members)

	sprints := make([]contextEntry, 0, len(data.AvailableSprints))
	for _, s := range data.AvailableSprints {
		sprints = append(sprints, contextEntry{name: s.Name, id: s.ID})
	}
	writeContextBlock(&b, headingSprints, sprints)

	epics := make([]contextEntry, 0, len(data.AvailableEpics))
	for _, e := range data.AvailableEpics {
		epics = append(epics, contextEntry{name: e.Name, id: e.ID})
	}
	writeContextBlock(&b, headingEpics, epics)

	statuses := make([]contextEntry, 0, len(data.AvailableStatuses))
	for _, s := range data.AvailableStatuses {
		statuses = append(statuses, contextEntry{name: s.Status, id: s.ID})
	}
	writeContextBlock(&b, headingStatuses, statuses)

	b.WriteString(promptInstructions)
	return b.String()
}

func writeContextBlock(b *strings.Builder, heading string, entries []contextEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n\n")
	b.WriteString(heading)
	for _, e := range entries {
		fmt.Fprintf(b, "\n- %s (ID: %s)", e.name, e.id)
	}
}
