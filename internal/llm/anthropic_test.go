package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"induk-agents/internal/domain"
)

type fakeMessageCreator struct {
	params anthropic.MessageNewParams
	resp   *anthropic.Message
	err    error
}

func (f *fakeMessageCreator) New(_ context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = body
	return f.resp, f.err
}

func TestAnthropicClientGenerate(t *testing.T) {
	fake := &fakeMessageCreator{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Baik, "},
			{Type: "text", Text: "jam berapa?"},
		},
	}}
	c := newAnthropicClient(fake, "", nil)
	temp := float32(0.7)

	out, err := c.Generate(context.Background(), Request{
		SystemInstruction: "persona",
		History: []domain.Turn{
			{Role: domain.MessageRoleUser, Text: "halo"},
			{Role: domain.MessageRoleModel, Text: "ya?"},
		},
		Prompt:      "janji temu",
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, "Baik, jam berapa?", out)

	assert.Equal(t, anthropic.Model("claude-sonnet-4-5"), fake.params.Model)
	assert.Equal(t, int64(anthropicDefaultMaxTokens), fake.params.MaxTokens)
	require.Len(t, fake.params.Messages, 3)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, fake.params.Messages[1].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, fake.params.Messages[2].Role)
	require.Len(t, fake.params.System, 1)
	assert.Equal(t, "persona", fake.params.System[0].Text)
	assert.True(t, fake.params.Temperature.Valid())
}

func TestAnthropicClientGenerate_SchemaInSystemPrompt(t *testing.T) {
	fake := &fakeMessageCreator{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{{Type: "text", Text: `{"targetAgent":"BILLING_INSURANCE","reasoning":"r"}`}},
	}}
	c := newAnthropicClient(fake, "claude-haiku-4-5", nil)

	_, err := c.Generate(context.Background(), Request{
		SystemInstruction: "route",
		Prompt:            "tagihan",
		ResponseSchema:    &genai.Schema{Type: genai.TypeObject, Required: []string{"targetAgent"}},
	})
	require.NoError(t, err)
	require.Len(t, fake.params.System, 1)
	system := fake.params.System[0].Text
	assert.True(t, strings.HasPrefix(system, "route"))
	assert.Contains(t, system, `"required":["targetAgent"]`)
}

func TestAnthropicClientGenerate_Errors(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		c := newAnthropicClient(&fakeMessageCreator{err: errors.New("overloaded")}, "", nil)
		_, err := c.Generate(context.Background(), Request{Prompt: "x"})
		require.Error(t, err)
	})

	t.Run("no text blocks", func(t *testing.T) {
		c := newAnthropicClient(&fakeMessageCreator{resp: &anthropic.Message{}}, "", nil)
		_, err := c.Generate(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
