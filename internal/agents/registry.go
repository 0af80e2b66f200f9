package agents

import (
	"fmt"
	"strings"

	"induk-agents/internal/config"
	"induk-agents/internal/domain"
)

// Registry mapea cada rol a su configuracion. Se construye una vez y no se muta.
type Registry struct {
	configs map[domain.AgentRole]domain.AgentConfig
}

// NewDefaultRegistry construye el registro con las personas de fabrica.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		// las personas de fabrica cubren toda la enumeracion
		panic(err)
	}
	return r
}

// NewRegistry aplica overrides opcionales sobre la configuracion de fabrica y valida que
// cada rol tenga una configuracion completa.
func NewRegistry(overrides map[string]config.AgentOverride) (*Registry, error) {
	configs := defaultConfigs()

	for key, ov := range overrides {
		role, err := domain.ParseAgentRole(key)
		if err != nil {
			return nil, fmt.Errorf("agent override %q: %w", key, err)
		}
		configs[role] = applyOverride(configs[role], ov)
	}

	for _, role := range domain.AllRoles() {
		cfg, ok := configs[role]
		if !ok {
			return nil, fmt.Errorf("agent %s: missing configuration", role)
		}
		if strings.TrimSpace(cfg.Name) == "" {
			return nil, fmt.Errorf("agent %s: empty name", role)
		}
		if strings.TrimSpace(cfg.SystemInstruction) == "" {
			return nil, fmt.Errorf("agent %s: empty system instruction", role)
		}
	}

	return &Registry{configs: configs}, nil
}

func applyOverride(cfg domain.AgentConfig, ov config.AgentOverride) domain.AgentConfig {
	if ov.Name != "" {
		cfg.Name = ov.Name
	}
	if ov.Description != "" {
		cfg.Description = ov.Description
	}
	if ov.Icon != "" {
		cfg.Icon = ov.Icon
	}
	if ov.Color != "" {
		cfg.Color = ov.Color
	}
	if strings.TrimSpace(ov.SystemInstruction) != "" {
		cfg.SystemInstruction = ov.SystemInstruction
	}
	return cfg
}

// Lookup es total sobre la enumeracion; un rol ausente es un defecto de programacion.
func (r *Registry) Lookup(role domain.AgentRole) domain.AgentConfig {
	cfg, ok := r.configs[role]
	if !ok {
		panic(fmt.Sprintf("agents: no configuration for role %q", role))
	}
	return cfg
}

// Orchestrator devuelve la configuracion del router.
func (r *Registry) Orchestrator() domain.AgentConfig {
	return r.Lookup(domain.AgentOrchestrator)
}

// Specialists devuelve los cuatro especialistas en orden fijo.
func (r *Registry) Specialists() []domain.AgentConfig {
	roles := domain.SpecialistRoles()
	out := make([]domain.AgentConfig, 0, len(roles))
	for _, role := range roles {
		out = append(out, r.Lookup(role))
	}
	return out
}

// All devuelve los cinco agentes, orquestador primero.
func (r *Registry) All() []domain.AgentConfig {
	roles := domain.AllRoles()
	out := make([]domain.AgentConfig, 0, len(roles))
	for _, role := range roles {
		out = append(out, r.Lookup(role))
	}
	return out
}
