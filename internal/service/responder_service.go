package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
	"induk-agents/internal/metrics"
)

// ResponderApology se devuelve cuando el especialista no produce texto.
const ResponderApology = "Maaf, saya tidak dapat memproses permintaan Anda saat ini."

// DefaultResponderTemperature equilibra determinismo y variedad.
const DefaultResponderTemperature float32 = 0.7

// ResponderService genera la respuesta del especialista elegido.
type ResponderService struct {
	llmClient   llm.LLMClient
	registry    *agents.Registry
	temperature float32
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewResponderService usa DefaultResponderTemperature si temperature es nil o negativa; 0 es valido.
func NewResponderService(llmClient llm.LLMClient, registry *agents.Registry, temperature *float32, logger *zap.Logger, m *metrics.Metrics) *ResponderService {
	temp := DefaultResponderTemperature
	if temperature != nil && *temperature >= 0 {
		temp = *temperature
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponderService{
		llmClient:   llmClient,
		registry:    registry,
		temperature: temp,
		logger:      logger,
		metrics:     m,
	}
}

// Respond devuelve el texto del modelo o ResponderApology. No reintenta.
func (s *ResponderService) Respond(ctx context.Context, role domain.AgentRole, history []domain.Turn, userText string) string {
	if s == nil {
		return ResponderApology
	}
	start := time.Now()
	text, err := s.respond(ctx, role, history, userText)
	if err != nil {
		s.logger.Warn("specialist response failed",
			zap.String("agent", role.String()),
			zap.Int("history_turns", len(history)),
			zap.Error(err),
		)
		s.metrics.ObserveResponse(role.String(), "fallback", time.Since(start))
		return ResponderApology
	}
	s.metrics.ObserveResponse(role.String(), "ok", time.Since(start))
	return text
}

func (s *ResponderService) respond(ctx context.Context, role domain.AgentRole, history []domain.Turn, userText string) (string, error) {
	if s.llmClient == nil || s.registry == nil {
		return "", ErrResponderNotConfigured
	}
	if !role.IsSpecialist() {
		return "", fmt.Errorf("%w: %q", ErrNotSpecialist, role)
	}

	temperature := s.temperature
	text, err := s.llmClient.Generate(ctx, llm.Request{
		SystemInstruction: s.registry.Lookup(role).SystemInstruction,
		History:           history,
		Prompt:            userText,
		Temperature:       &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}
