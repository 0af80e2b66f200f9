package domain

// Phase es el estado de ocupacion de una conversacion.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRouting    Phase = "routing"
	PhaseGenerating Phase = "generating"
)

// ConversationSnapshot es la vista de solo lectura que consume la capa de presentacion.
type ConversationSnapshot struct {
	ID            string     `json:"id"`
	Messages      []Message  `json:"messages"`
	ActiveAgent   *AgentRole `json:"active_agent,omitempty"`
	IsRouting     bool       `json:"is_routing"`
	IsGenerating  bool       `json:"is_generating"`
	RoutingReason string     `json:"routing_reason,omitempty"`
	Phase         Phase      `json:"phase"`
}

// Busy indica si hay un turno en curso.
func (s ConversationSnapshot) Busy() bool {
	return s.IsRouting || s.IsGenerating
}
