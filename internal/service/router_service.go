package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"induk-agents/internal/agents"
	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
	"induk-agents/internal/metrics"
)

// RoutingFallbackReason acompaña al rol por defecto cuando el ruteo falla.
const RoutingFallbackReason = "Routing failed, defaulting to general management."

// FallbackRouterResponse es la decision usada ante cualquier falla del router.
func FallbackRouterResponse() domain.RouterResponse {
	return domain.RouterResponse{
		TargetAgent: domain.AgentPatientManagement,
		Reasoning:   RoutingFallbackReason,
	}
}

// RouterService clasifica el texto del usuario hacia uno de los cuatro especialistas.
type RouterService struct {
	llmClient llm.LLMClient
	registry  *agents.Registry
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewRouterService(llmClient llm.LLMClient, registry *agents.Registry, logger *zap.Logger, m *metrics.Metrics) *RouterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouterService{
		llmClient: llmClient,
		registry:  registry,
		logger:    logger,
		metrics:   m,
	}
}

// Route nunca devuelve error: cualquier falla termina en FallbackRouterResponse.
func (s *RouterService) Route(ctx context.Context, userText string) domain.RouterResponse {
	if s == nil {
		return FallbackRouterResponse()
	}
	start := time.Now()
	resp, err := s.route(ctx, userText)
	if err != nil {
		s.logger.Warn("routing failed, using fallback", zap.Error(err))
		resp = FallbackRouterResponse()
		s.metrics.ObserveRoute(resp.TargetAgent.String(), true, time.Since(start))
		return resp
	}

	s.logger.Info("request routed",
		zap.String("agent", resp.TargetAgent.String()),
		zap.String("reasoning", resp.Reasoning),
	)
	s.metrics.ObserveRoute(resp.TargetAgent.String(), false, time.Since(start))
	return resp
}

func (s *RouterService) route(ctx context.Context, userText string) (domain.RouterResponse, error) {
	if s.llmClient == nil || s.registry == nil {
		return domain.RouterResponse{}, ErrRouterNotConfigured
	}

	raw, err := s.llmClient.Generate(ctx, llm.Request{
		SystemInstruction: s.registry.Orchestrator().SystemInstruction,
		Prompt:            userText,
		ResponseSchema:    RouterResponseSchema(),
	})
	if err != nil {
		return domain.RouterResponse{}, fmt.Errorf("llm generate: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return domain.RouterResponse{}, llm.ErrEmptyResponse
	}

	return ParseRouterReply(raw)
}

// RouterResponseSchema restringe la respuesta del orquestador a {targetAgent, reasoning}.
func RouterResponseSchema() *genai.Schema {
	roles := domain.SpecialistRoles()
	enum := make([]string, 0, len(roles))
	for _, r := range roles {
		enum = append(enum, r.String())
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"targetAgent": {
				Type:        genai.TypeString,
				Enum:        enum,
				Description: "The enum value of the agent best suited to handle the request.",
			},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "Brief explanation of why this agent was selected.",
			},
		},
		Required:         []string{"targetAgent", "reasoning"},
		PropertyOrdering: []string{"targetAgent", "reasoning"},
	}
}
