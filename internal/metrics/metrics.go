package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados de un turno de conversacion.
const (
	TurnCompleted = "completed"
	TurnFailed    = "failed"
	TurnRejected  = "rejected"
)

// Metrics agrupa los colectores de Prometheus del asistente.
// Todos los metodos aceptan receptor nil para que los tests no necesiten registry.
type Metrics struct {
	RouterDecisions     *prometheus.CounterVec
	ResponderReplies    *prometheus.CounterVec
	LLMLatency          *prometheus.HistogramVec
	Turns               *prometheus.CounterVec
	ActiveConversations prometheus.Gauge
}

// New crea y registra las metricas en el registerer indicado.
func New(reg prometheus.Registerer) *Metrics {
	routerDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "induk_router_decisions_total",
		Help: "Routing decisions by target agent and whether the fallback was used",
	}, []string{"agent", "fallback"})

	responderReplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "induk_responder_replies_total",
		Help: "Specialist replies by agent and outcome",
	}, []string{"agent", "outcome"})

	llmLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "induk_llm_request_duration_seconds",
		Help:    "Latency of outbound model calls by stage",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"stage"})

	turns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "induk_conversation_turns_total",
		Help: "Conversation turns by outcome",
	}, []string{"outcome"})

	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "induk_conversations_active",
		Help: "Conversations currently held in memory",
	})

	reg.MustRegister(routerDecisions, responderReplies, llmLatency, turns, active)

	return &Metrics{
		RouterDecisions:     routerDecisions,
		ResponderReplies:    responderReplies,
		LLMLatency:          llmLatency,
		Turns:               turns,
		ActiveConversations: active,
	}
}

func (m *Metrics) ObserveRoute(agent string, fallback bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RouterDecisions.WithLabelValues(agent, strconv.FormatBool(fallback)).Inc()
	m.LLMLatency.WithLabelValues("route").Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveResponse(agent, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ResponderReplies.WithLabelValues(agent, outcome).Inc()
	m.LLMLatency.WithLabelValues("respond").Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetActiveConversations(n int) {
	if m == nil {
		return
	}
	m.ActiveConversations.Set(float64(n))
}
