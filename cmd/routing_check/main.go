package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/config"
	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
	"induk-agents/internal/service"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D4FF"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// result es una fila del reporte.
type result struct {
	Scenario Scenario
	Routed   domain.RouterResponse
	Reply    string
	Judge    *judgeResponse
}

func (r result) correct() bool {
	return r.Routed.TargetAgent == r.Scenario.Expected
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	overrides, err := config.LoadAgentOverrides(cfg.AgentsFile)
	if err != nil {
		log.Fatal(err)
	}
	registry, err := agents.NewRegistry(overrides)
	if err != nil {
		log.Fatal(err)
	}

	llmClient, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	router := service.NewRouterService(llmClient, registry, logger, nil)
	responder := service.NewResponderService(llmClient, registry, &cfg.ResponderTemperature, logger, nil)

	results := runScenarios(ctx, defaultScenarios(), router, responder, llmClient, registry, logger)
	printSummary(results)

	if accuracy(results) < 1 {
		os.Exit(1)
	}
}

func runScenarios(
	ctx context.Context,
	scenarios []Scenario,
	router *service.RouterService,
	responder *service.ResponderService,
	judge llm.LLMClient,
	registry *agents.Registry,
	logger *zap.Logger,
) []result {
	results := make([]result, 0, len(scenarios))
	for _, sc := range scenarios {
		fmt.Printf("%s %s\n", labelStyle.Render("[Input]"), sc.Input)

		decision := router.Route(ctx, sc.Input)
		res := result{Scenario: sc, Routed: decision}

		mark := okStyle.Render("✓")
		if !res.correct() {
			mark = failStyle.Render("✗")
		}
		fmt.Printf("%s routed=%s expected=%s\n", mark, decision.TargetAgent, sc.Expected)
		fmt.Printf("%s\n", mutedStyle.Render("  "+decision.Reasoning))

		res.Reply = responder.Respond(ctx, decision.TargetAgent, nil, sc.Input)
		agent := registry.Lookup(decision.TargetAgent)
		fmt.Printf("%s %s\n", labelStyle.Render("["+agent.Icon+" "+agent.Name+"]"), res.Reply)

		jr, err := evaluateResponse(ctx, judge, agent, sc, res.Reply)
		if err != nil {
			logger.Warn("judge failed", zap.String("scenario", sc.Name), zap.Error(err))
		} else {
			res.Judge = &jr
			fmt.Printf("%s %q\n", labelStyle.Render("Juri:"), jr.Reasoning)
			fmt.Printf("Persona %d/5 | Bahasa OK: %t\n", jr.PersonaScore, jr.LanguageOK)
		}
		fmt.Println()

		results = append(results, res)
	}
	return results
}

func accuracy(results []result) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range results {
		if r.correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(results))
}

func averagePersona(results []result) (float64, int) {
	total, n := 0, 0
	for _, r := range results {
		if r.Judge == nil {
			continue
		}
		total += r.Judge.PersonaScore
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return float64(total) / float64(n), n
}

func printSummary(results []result) {
	avg, judged := averagePersona(results)
	fmt.Println("==== Ringkasan ====")
	acc := fmt.Sprintf("Akurasi routing: %.0f%% (%d skenario)", accuracy(results)*100, len(results))
	if accuracy(results) < 1 {
		fmt.Println(failStyle.Render(acc))
	} else {
		fmt.Println(okStyle.Render(acc))
	}
	fmt.Printf("Persona rata-rata: %.2f/5 (%d dinilai)\n", avg, judged)
}
