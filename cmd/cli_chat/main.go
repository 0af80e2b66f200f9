package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/config"
	"induk-agents/internal/conversation"
	"induk-agents/internal/domain"
	"induk-agents/internal/llm"
	"induk-agents/internal/service"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// La TUI ocupa la terminal; los logs van a un archivo si se pide.
	logger := zap.NewNop()
	if path := os.Getenv("CLI_LOG_FILE"); path != "" {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.OutputPaths = []string{path}
		zcfg.ErrorOutputPaths = []string{path}
		if l, err := zcfg.Build(); err == nil {
			logger = l
		}
	}
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
	routerSvc := service.NewRouterService(llmClient, registry, logger, nil)
	responderSvc := service.NewResponderService(llmClient, registry, &cfg.ResponderTemperature, logger, nil)

	var program *tea.Program
	conv := conversation.New("cli", routerSvc, responderSvc,
		conversation.WithRoutingDelay(cfg.RoutingDelay),
		conversation.WithLogger(logger),
		conversation.WithObserver(func(s domain.ConversationSnapshot) {
			if program != nil {
				program.Send(snapshotMsg(s))
			}
		}),
	)

	program = tea.NewProgram(newModel(ctx, conv, registry), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}
