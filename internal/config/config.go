// Package config loads and validates the run-time configuration for the
// critic loop engine via a YAML-plus-validator pattern.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/criticloop"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/orchestrator"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox"
)

// Config is the complete top-level configuration for a dagcritic process,
// covering LLM provider credentials, question generation defaults, the
// critic loop's iteration budget, sandbox execution limits, orchestrator
// concurrency, and the HTTP server's bind address.
type Config struct {
	// Provider configures the LLM backend shared by the question
	// generator, DAG builder, and critic.
	Provider ProviderConfig `yaml:"provider" validate:"required"`
	// QuestionCount is how many questions the generator produces per
	// run when the caller doesn't override it.
	QuestionCount int `yaml:"question_count" validate:"omitempty,min=1,max=100"`
	// MaxIterations is how many build/critique rounds a single question
	// gets before the critic loop gives up. A nil pointer means the YAML
	// omitted the key and the engine's default
	// (criticloop.DefaultMaxIterations) applies; an explicit 0 is the
	// deliberate "always give up" boundary and is left alone.
	MaxIterations *int `yaml:"max_iterations" validate:"omitempty,min=0,max=20"`
	// NodeTimeoutSeconds bounds a single sandboxed node's wall time.
	NodeTimeoutSeconds int `yaml:"node_timeout_seconds" validate:"omitempty,min=1,max=300"`
	// MaxConcurrentQuestions caps how many questions the orchestrator
	// runs through the critic loop at once within a single run.
	MaxConcurrentQuestions int `yaml:"max_concurrent_questions" validate:"omitempty,min=1,max=1000"`
	// Server configures the HTTP/SSE transport.
	Server ServerConfig `yaml:"server"`
}

// ProviderConfig names the LLM provider and credential used for every
// completion call in a run.
type ProviderConfig struct {
	// APIKey authenticates against the provider. Left empty in the YAML
	// file and resolved from an environment variable at load time.
	APIKey string `yaml:"-"`
	// APIKeyEnv names the environment variable APIKey is read from.
	APIKeyEnv string `yaml:"api_key_env" validate:"required"`
	// Model is the provider's model identifier. Empty selects the
	// provider's own default.
	Model string `yaml:"model"`
	// BaseURL overrides the provider's default API endpoint, for
	// OpenAI-compatible gateways.
	BaseURL string `yaml:"base_url"`
}

// ServerConfig configures the HTTP server exposing the run/report API.
type ServerConfig struct {
	Address string `yaml:"address" validate:"omitempty,hostname_port"`
}

// DefaultQuestionCount mirrors questiongen.DefaultCount for configs that
// omit question_count.
const DefaultQuestionCount = 10

// DefaultMaxConcurrentQuestions bounds fan-out when the config omits it.
const DefaultMaxConcurrentQuestions = 5

// DefaultServerAddress is used when the config omits server.address.
const DefaultServerAddress = ":8080"

// Load reads, parses, and validates the YAML configuration file at path,
// resolving the provider API key from the environment variable it names.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.Provider.APIKeyEnv != "" {
		cfg.Provider.APIKey = os.Getenv(cfg.Provider.APIKeyEnv)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Provider.APIKey == "" {
		return Config{}, fmt.Errorf("config: environment variable %s is unset or empty", cfg.Provider.APIKeyEnv)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.QuestionCount == 0 {
		c.QuestionCount = DefaultQuestionCount
	}
	if c.NodeTimeoutSeconds == 0 {
		c.NodeTimeoutSeconds = int(sandbox.DefaultNodeTimeout.Seconds())
	}
	if c.MaxConcurrentQuestions == 0 {
		c.MaxConcurrentQuestions = DefaultMaxConcurrentQuestions
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	if c.MaxIterations == nil {
		def := criticloop.DefaultMaxIterations
		c.MaxIterations = &def
	}
}

// LLMConfig returns the llmclient.Config derived from this Config's
// provider section.
func (c Config) LLMConfig() llmclient.Config {
	return llmclient.Config{
		APIKey:  c.Provider.APIKey,
		Model:   c.Provider.Model,
		BaseURL: c.Provider.BaseURL,
	}
}

// OrchestratorOptions returns the orchestrator.Options derived from this
// Config.
func (c Config) OrchestratorOptions() orchestrator.Options {
	maxIter := criticloop.DefaultMaxIterations
	if c.MaxIterations != nil {
		maxIter = *c.MaxIterations
	}
	return orchestrator.Options{
		MaxConcurrentQuestions: c.MaxConcurrentQuestions,
		MaxIterations:          maxIter,
		QuestionCount:          c.QuestionCount,
	}
}
