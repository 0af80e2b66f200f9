package domain

import "time"

// Roles de mensaje dentro del transcript.
const (
	MessageRoleUser   = "user"
	MessageRoleModel  = "model"
	MessageRoleSystem = "system"
)

// Message es una entrada del log de conversación. Solo se agrega, nunca se muta.
type Message struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Agent     *AgentRole `json:"agent,omitempty"` // Agente que genero el mensaje
	Timestamp time.Time  `json:"timestamp"`
}

// IsSystem indica si el mensaje es un aviso de UI y no un turno conversacional.
func (m Message) IsSystem() bool {
	return m.Role == MessageRoleSystem
}

// Turn es un turno previo enviado al modelo como historial.
type Turn struct {
	Role string `json:"role"` // "user" o "model"
	Text string `json:"text"`
}

// HistoryFromMessages filtra los avisos de sistema y conserva el orden cronologico.
func HistoryFromMessages(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		if m.IsSystem() {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Text: m.Content})
	}
	return turns
}
