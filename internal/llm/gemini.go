package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"induk-agents/internal/domain"
)

// contentGenerator es el subconjunto de genai.Models que usamos.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implementa LLMClient sobre la API de Gemini.
type GeminiClient struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewGeminiClient crea el cliente genai con la API key del entorno.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) (*GeminiClient, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiClient(client.Models, model, logger), nil
}

func newGeminiClient(models contentGenerator, model string, logger *zap.Logger) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{models: models, model: model, logger: logger}
}

func (c *GeminiClient) Generate(ctx context.Context, r Request) (string, error) {
	contents := make([]*genai.Content, 0, len(r.History)+1)
	for _, t := range r.History {
		contents = append(contents, genai.NewContentFromText(t.Text, geminiRole(t.Role)))
	}
	contents = append(contents, genai.NewContentFromText(r.Prompt, genai.RoleUser))

	gc := &genai.GenerateContentConfig{
		Temperature: r.Temperature,
	}
	if strings.TrimSpace(r.SystemInstruction) != "" {
		gc.SystemInstruction = genai.NewContentFromText(r.SystemInstruction, genai.RoleUser)
	}
	if r.ResponseSchema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = r.ResponseSchema
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		c.logger.Debug("gemini returned no text", zap.String("model", c.model))
		return "", ErrEmptyResponse
	}
	return text, nil
}

func geminiRole(role string) genai.Role {
	if role == domain.MessageRoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
