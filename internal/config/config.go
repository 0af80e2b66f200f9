package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Proveedores de LLM soportados.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-5",
}

var (
	ErrMissingAPIKey       = errors.New("LLM_API_KEY (or API_KEY) is required")
	ErrUnsupportedProvider = errors.New("unsupported LLM_PROVIDER")
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	LLMProvider          string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMAPIKey            string        `env:"LLM_API_KEY"`
	APIKey               string        `env:"API_KEY"`
	LLMBaseURL           string        `env:"LLM_BASE_URL"`
	LLMModel             string        `env:"LLM_MODEL"`
	LLMTimeout           time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	ResponderTemperature float32       `env:"RESPONDER_TEMPERATURE" envDefault:"0.7"`

	RoutingDelay          time.Duration `env:"ROUTING_DELAY" envDefault:"0s"`
	AgentsFile            string        `env:"AGENTS_FILE"`
	ConversationCacheSize int           `env:"CONVERSATION_CACHE_SIZE" envDefault:"1024"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"20"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	OperatorKeyHash     string `env:"OPERATOR_KEY_HASH"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return ErrUnsupportedProvider
	}

	// API_KEY es el nombre que usaba la demo original.
	if strings.TrimSpace(c.LLMAPIKey) == "" {
		c.LLMAPIKey = strings.TrimSpace(c.APIKey)
	}
	if c.LLMAPIKey == "" {
		return ErrMissingAPIKey
	}

	if strings.TrimSpace(c.LLMModel) == "" {
		c.LLMModel = defaultModels[c.LLMProvider]
	}

	if c.RoutingDelay < 0 {
		c.RoutingDelay = 0
	}
	if c.ConversationCacheSize <= 0 {
		c.ConversationCacheSize = 1024
	}
	if c.ResponderTemperature < 0 {
		c.ResponderTemperature = 0.7
	}
	if c.JWTAccessTTLMinutes <= 0 {
		c.JWTAccessTTLMinutes = 60
	}
	return nil
}

// AuthEnabled indica si las rutas de conversacion exigen JWT.
func (c *Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}
