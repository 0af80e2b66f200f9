package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"induk-agents/internal/domain"
)

const anthropicDefaultMaxTokens = 1024

// messageCreator es el subconjunto de anthropic.MessageService que usamos.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicClient implementa LLMClient sobre la API de mensajes de Anthropic.
// Claude no acepta un response schema, asi que el schema viaja en la instruccion de sistema.
type AnthropicClient struct {
	messages messageCreator
	model    string
	logger   *zap.Logger
}

func NewAnthropicClient(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) *AnthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	client := anthropic.NewClient(opts...)
	return newAnthropicClient(&client.Messages, model, logger)
}

func newAnthropicClient(messages messageCreator, model string, logger *zap.Logger) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicClient{messages: messages, model: model, logger: logger}
}

func (c *AnthropicClient) Generate(ctx context.Context, r Request) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, len(r.History)+1)
	for _, t := range r.History {
		block := anthropic.NewTextBlock(t.Text)
		if t.Role == domain.MessageRoleModel {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
			continue
		}
		msgs = append(msgs, anthropic.NewUserMessage(block))
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(r.Prompt)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicDefaultMaxTokens,
		Messages:  msgs,
	}

	system := r.SystemInstruction
	if r.ResponseSchema != nil {
		schemaJSON, err := json.Marshal(SchemaToMap(r.ResponseSchema))
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		system = strings.TrimSpace(system) + "\n\nBalas HANYA dengan satu objek JSON yang valid sesuai skema berikut, tanpa teks lain:\n" + string(schemaJSON)
	}
	if strings.TrimSpace(system) != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if r.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*r.Temperature))
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var parts []string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		c.logger.Debug("anthropic returned no text", zap.String("model", c.model), zap.String("stop_reason", string(resp.StopReason)))
		return "", ErrEmptyResponse
	}
	return text, nil
}
