package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"induk-agents/internal/domain"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// ParseRouterReply decodifica la respuesta del orquestador y valida que el destino sea un especialista.
// Gemini respeta el response schema; otros proveedores pueden envolver el JSON en texto o fences.
func ParseRouterReply(raw string) (domain.RouterResponse, error) {
	candidate := ExtractFirstJSONObject(CleanLLMJSONResponse(raw))
	if candidate == "" {
		return domain.RouterResponse{}, fmt.Errorf("%w: no json object in %q", ErrMalformedRouterReply, truncate(raw, 120))
	}

	var tmp struct {
		TargetAgent *string `json:"targetAgent"`
		Reasoning   *string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(candidate), &tmp); err != nil {
		return domain.RouterResponse{}, fmt.Errorf("%w: %v", ErrMalformedRouterReply, err)
	}
	if tmp.TargetAgent == nil || tmp.Reasoning == nil {
		return domain.RouterResponse{}, fmt.Errorf("%w: missing targetAgent or reasoning", ErrMalformedRouterReply)
	}

	// El enum del schema no se confia: un destino fuera de los especialistas es falla de ruteo.
	role := domain.AgentRole(*tmp.TargetAgent)
	if !role.IsSpecialist() {
		return domain.RouterResponse{}, fmt.Errorf("%w: %q", ErrNotSpecialist, *tmp.TargetAgent)
	}

	return domain.RouterResponse{
		TargetAgent: role,
		Reasoning:   *tmp.Reasoning,
	}, nil
}

// CleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func CleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractFirstJSONObject devuelve el primer objeto JSON balanceado del texto, o "".
func ExtractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
