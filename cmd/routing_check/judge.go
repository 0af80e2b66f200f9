package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
	"induk-agents/internal/service"
)

// judgeResponse es la evaluacion estructurada del juez.
type judgeResponse struct {
	Reasoning    string `json:"reasoning"`
	PersonaScore int    `json:"persona_score"`
	LanguageOK   bool   `json:"language_ok"`
}

func judgeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"reasoning":     {Type: genai.TypeString},
			"persona_score": {Type: genai.TypeInteger},
			"language_ok":   {Type: genai.TypeBoolean},
		},
		Required:         []string{"reasoning", "persona_score", "language_ok"},
		PropertyOrdering: []string{"reasoning", "persona_score", "language_ok"},
	}
}

func evaluateResponse(
	ctx context.Context,
	judge llm.LLMClient,
	agent domain.AgentConfig,
	sc Scenario,
	response string,
) (judgeResponse, error) {
	heuristicLine := fmt.Sprintf("Indikator heuristik: bahasa_indonesia=%t, format_daftar=%t",
		looksIndonesian(response), looksLikeList(response))

	raw, err := judge.Generate(ctx, llm.Request{
		Prompt:         buildJudgePrompt(agent, heuristicLine, sc.Input, response, sc.ExpectedBehavior),
		ResponseSchema: judgeSchema(),
	})
	if err != nil {
		return judgeResponse{}, err
	}

	jsonStr := service.ExtractFirstJSONObject(service.CleanLLMJSONResponse(raw))
	if jsonStr == "" {
		return judgeResponse{}, fmt.Errorf("judge returned no json: %q", raw)
	}

	var jr judgeResponse
	if err := json.Unmarshal([]byte(jsonStr), &jr); err != nil {
		return judgeResponse{}, fmt.Errorf("parse judge json: %w (raw=%q)", err, jsonStr)
	}

	jr.PersonaScore = clamp1to5(jr.PersonaScore)
	// una respuesta fuera de bahasa Indonesia nunca pasa de 2
	if !jr.LanguageOK && jr.PersonaScore > 2 {
		jr.PersonaScore = 2
	}
	return jr, nil
}

func clamp1to5(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

var indonesianMarkers = []string{
	"anda", "saya", "silakan", "mohon", "terima kasih", "dengan", "untuk", "yang", "bapak", "ibu", "baik",
}

// looksIndonesian cuenta palabras funcionales frecuentes; dos o mas bastan.
func looksIndonesian(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool)
	joined := " " + strings.Join(words, " ") + " "
	for _, m := range indonesianMarkers {
		if strings.Contains(joined, " "+m+" ") || strings.Contains(joined, " "+m+",") || strings.Contains(joined, " "+m+".") {
			seen[m] = true
		}
	}
	return len(seen) >= 2
}

func looksLikeList(text string) bool {
	lines := strings.Split(text, "\n")
	items := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "- ") || strings.HasPrefix(l, "* ") || (len(l) > 2 && l[0] >= '1' && l[0] <= '9' && l[1] == '.') {
			items++
		}
	}
	return items >= 2
}

func buildJudgePrompt(agent domain.AgentConfig, heuristicLine, input, response, expected string) string {
	return fmt.Sprintf(
		`Anda adalah auditor mutu layanan rumah sakit. Nilai jawaban seorang agen spesialis.

Agen: %s
Deskripsi peran: %s
%s

Pesan pasien: %q
Jawaban agen: %q
Perilaku yang diharapkan: %s

Nilai (1-5) kesesuaian persona:
- 5: tetap dalam peran, sopan, relevan, dan menanyakan informasi yang dibutuhkan.
- 3: relevan tetapi generik atau kurang menanyakan detail.
- 1: keluar dari peran, menjawab di luar lingkup, atau membuat data medis/tagihan sendiri.
language_ok bernilai true hanya jika jawaban seluruhnya dalam Bahasa Indonesia.

Balas HANYA JSON (tanpa markdown):
{
  "reasoning": "...",
  "persona_score": 0,
  "language_ok": true
}`,
		agent.Name, agent.Description, heuristicLine, input, response, expected,
	)
}
