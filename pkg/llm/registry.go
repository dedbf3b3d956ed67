// Package llm provides LLM connection implementations for various providers.
package llm

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/parley-ai/parley/pkg/core"
)

// Provider identifies a supported LLM provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderDeepSeek  Provider = "deepseek"
)

// EnvKey returns the environment variable holding the provider's credential.
func (p Provider) EnvKey() string {
	switch p {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	}
	return ""
}

// Known model identifiers, grouped by provider.
var modelCatalog = map[Provider][]string{
	ProviderAnthropic: {"claude-sonnet-4-5-20250929", "claude-3-5-sonnet-20241022"},
	ProviderOpenAI:    {"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
	ProviderGemini:    {"gemini-2.0-flash-exp", "gemini-2.0-flash-lite", "gemini-1.5-pro"},
	ProviderDeepSeek:  {"deepseek-chat", "deepseek-reasoner"},
}

// ProviderFor resolves a model identifier to its provider by name prefix.
func ProviderFor(model string) (Provider, error) {
	switch {
	case strings.HasPrefix(model, "claude"):
		return ProviderAnthropic, nil
	case strings.HasPrefix(model, "gpt"):
		return ProviderOpenAI, nil
	case strings.HasPrefix(model, "gemini"):
		return ProviderGemini, nil
	case strings.HasPrefix(model, "deepseek"):
		return ProviderDeepSeek, nil
	}
	return "", core.ConfigurationErrorf("unknown model: %s", model)
}

// AvailableModels returns the known model identifiers grouped by provider name.
func AvailableModels() map[string][]string {
	out := make(map[string][]string, len(modelCatalog))
	for provider, models := range modelCatalog {
		list := make([]string, len(models))
		copy(list, models)
		out[string(provider)] = list
	}
	return out
}

// Registry resolves model identifiers to provider connections.
// Connections are created lazily and cached per provider.
type Registry struct {
	logger *logrus.Logger
	mu     sync.Mutex
	conns  map[Provider]core.LLMConnection
}

// NewRegistry creates a registry reading credentials from the environment.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		logger: logger,
		conns:  make(map[Provider]core.LLMConnection),
	}
}

// Connection returns a connection for the provider serving the given model.
// Fails with a configuration error when the model is unknown or the
// provider's credential is not set.
func (r *Registry) Connection(model string) (core.LLMConnection, error) {
	provider, err := ProviderFor(model)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv(provider.EnvKey())
	if apiKey == "" {
		return nil, core.ConfigurationErrorf("no credential for provider %s: %s is not set", provider, provider.EnvKey())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.conns[provider]; ok {
		return conn, nil
	}

	var conn core.LLMConnection
	switch provider {
	case ProviderAnthropic:
		conn = NewAnthropicConnection(apiKey, "")
	case ProviderOpenAI:
		conn = NewOpenAIConnection(apiKey, "")
	case ProviderGemini:
		conn = NewGeminiConnection(apiKey, "")
	case ProviderDeepSeek:
		conn = NewDeepSeekConnection(apiKey, "")
	}

	r.logger.WithField("provider", provider).Debug("created provider connection")
	r.conns[provider] = conn
	return conn, nil
}

// ValidateCredentials checks that every model resolves to a provider whose
// credential is present, without opening any connections.
func (r *Registry) ValidateCredentials(models ...string) error {
	for _, model := range models {
		provider, err := ProviderFor(model)
		if err != nil {
			return err
		}
		if os.Getenv(provider.EnvKey()) == "" {
			return core.ConfigurationErrorf("no credential for provider %s: %s is not set", provider, provider.EnvKey())
		}
	}
	return nil
}

// Close closes all cached connections.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for provider, conn := range r.conns {
		if err := conn.Close(ctx); err != nil {
			r.logger.WithError(err).WithField("provider", provider).Warn("failed to close connection")
		}
		delete(r.conns, provider)
	}
	return nil
}
