package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"induk-agents/internal/domain"
)

type fakeContentGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeContentGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func TestGeminiClientGenerate(t *testing.T) {
	fake := &fakeContentGenerator{resp: textResponse(`{"targetAgent":"APPOINTMENTS","reasoning":"r"}`)}
	c := newGeminiClient(fake, "", nil)

	schema := &genai.Schema{Type: genai.TypeObject}
	out, err := c.Generate(context.Background(), Request{
		SystemInstruction: "route",
		History:           []domain.Turn{{Role: domain.MessageRoleModel, Text: "sebelumnya"}},
		Prompt:            "janji temu",
		ResponseSchema:    schema,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"targetAgent":"APPOINTMENTS","reasoning":"r"}`, out)

	assert.Equal(t, "gemini-2.5-flash", fake.model)
	require.Len(t, fake.contents, 2)
	assert.Equal(t, string(genai.RoleModel), fake.contents[0].Role)
	assert.Equal(t, string(genai.RoleUser), fake.contents[1].Role)
	assert.Equal(t, "janji temu", fake.contents[1].Parts[0].Text)

	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, "route", fake.config.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Same(t, schema, fake.config.ResponseSchema)
	assert.Nil(t, fake.config.Temperature)
}

func TestGeminiClientGenerate_Temperature(t *testing.T) {
	fake := &fakeContentGenerator{resp: textResponse("halo")}
	c := newGeminiClient(fake, "gemini-2.5-pro", nil)
	temp := float32(0.7)

	_, err := c.Generate(context.Background(), Request{Prompt: "x", Temperature: &temp})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", fake.model)
	require.NotNil(t, fake.config.Temperature)
	assert.InDelta(t, 0.7, *fake.config.Temperature, 0.0001)
	assert.Empty(t, fake.config.ResponseMIMEType)
	assert.Nil(t, fake.config.SystemInstruction)
}

func TestGeminiClientGenerate_Errors(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		c := newGeminiClient(&fakeContentGenerator{err: errors.New("quota")}, "", nil)
		_, err := c.Generate(context.Background(), Request{Prompt: "x"})
		require.Error(t, err)
	})

	t.Run("empty text", func(t *testing.T) {
		c := newGeminiClient(&fakeContentGenerator{resp: &genai.GenerateContentResponse{}}, "", nil)
		_, err := c.Generate(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
