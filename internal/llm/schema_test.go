package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestSchemaToMap(t *testing.T) {
	assert.Nil(t, SchemaToMap(nil))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"targetAgent": {Type: genai.TypeString, Enum: []string{"A", "B"}, Description: "who"},
			"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"targetAgent"},
	}

	got := SchemaToMap(schema)
	assert.Equal(t, "object", got["type"])
	assert.Equal(t, false, got["additionalProperties"])
	assert.Equal(t, []any{"targetAgent"}, got["required"])

	props := got["properties"].(map[string]any)
	target := props["targetAgent"].(map[string]any)
	assert.Equal(t, "string", target["type"])
	assert.Equal(t, []any{"A", "B"}, target["enum"])
	assert.Equal(t, "who", target["description"])

	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}
