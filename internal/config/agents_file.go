package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AgentOverride reemplaza campos de la persona de fabrica de un rol. Los campos vacios se ignoran.
type AgentOverride struct {
	Name              string `yaml:"name"`
	Description       string `yaml:"description"`
	Icon              string `yaml:"icon"`
	Color             string `yaml:"color"`
	SystemInstruction string `yaml:"system_instruction"`
}

// AgentsFile es el formato del archivo AGENTS_FILE:
//
//	agents:
//	  APPOINTMENTS:
//	    name: "Penjadwalan"
//	    system_instruction: |
//	      ...
type AgentsFile struct {
	Agents map[string]AgentOverride `yaml:"agents"`
}

// LoadAgentOverrides lee los overrides de persona. Un path vacio no es error.
func LoadAgentOverrides(path string) (map[string]AgentOverride, error) {
	if path == "" {
		return nil, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load agents file %q: %w", path, err)
	}

	var af AgentsFile
	if err := k.UnmarshalWithConf("", &af, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("parse agents file %q: %w", path, err)
	}
	return af.Agents, nil
}
