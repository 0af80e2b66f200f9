package llm

import (
	"strings"

	"google.golang.org/genai"
)

// SchemaToMap convierte un genai.Schema a JSON Schema para proveedores que no hablan genai.
func SchemaToMap(schema *genai.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	out := map[string]any{}
	if t := schemaTypeToString(schema.Type); t != "" {
		out["type"] = t
	}
	if schema.Description != "" {
		out["description"] = schema.Description
	}
	if len(schema.Enum) > 0 {
		enum := make([]any, 0, len(schema.Enum))
		for _, e := range schema.Enum {
			enum = append(enum, e)
		}
		out["enum"] = enum
	}
	if len(schema.Properties) > 0 {
		props := make(map[string]any, len(schema.Properties))
		for name, prop := range schema.Properties {
			props[name] = SchemaToMap(prop)
		}
		out["properties"] = props
		// strict mode de OpenAI exige additionalProperties=false en objetos
		out["additionalProperties"] = false
	}
	if len(schema.Required) > 0 {
		req := make([]any, 0, len(schema.Required))
		for _, r := range schema.Required {
			req = append(req, r)
		}
		out["required"] = req
	}
	if schema.Items != nil {
		out["items"] = SchemaToMap(schema.Items)
	}
	return out
}

func schemaTypeToString(t genai.Type) string {
	switch t {
	case genai.TypeString:
		return "string"
	case genai.TypeNumber:
		return "number"
	case genai.TypeInteger:
		return "integer"
	case genai.TypeBoolean:
		return "boolean"
	case genai.TypeArray:
		return "array"
	case genai.TypeObject:
		return "object"
	case genai.TypeUnspecified, genai.TypeNULL:
		return ""
	default:
		return strings.ToLower(string(t))
	}
}
