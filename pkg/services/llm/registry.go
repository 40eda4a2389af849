package llm

import (
	"fmt"
	"slices"
	"sync"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// OfflineText is what the static provider answers with.
const OfflineText = "Narrative generation is running in offline mode. Configure an LLM provider to get a written analysis."

// Factory builds a generator from its configuration.
type Factory func(cfg Config) (TextGenerator, error)

// Registry manages provider factories.
type Registry interface {
	// Register adds a new provider factory
	Register(provider string, factory Factory) error
	// Create instantiates the generator named by cfg.Provider
	Create(cfg Config) (TextGenerator, error)
	// ListProviders returns the registered provider names, sorted
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

// NewDefaultRegistry returns a registry with the openai, gemini and static
// providers registered.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(ProviderOpenAI, openAIFactory)
	_ = r.Register(ProviderGemini, geminiFactory)
	_ = r.Register(ProviderStatic, func(Config) (TextGenerator, error) { return Static(OfflineText), nil })
	return r
}

func openAIFactory(cfg Config) (TextGenerator, error) {
	client, err := NewOpenAI(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func geminiFactory(cfg Config) (TextGenerator, error) {
	client, err := NewGemini(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *registry) Register(provider string, factory Factory) error {
	if provider == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[provider]; exists {
		return fmt.Errorf("provider %q is already registered", provider)
	}

	r.factories[provider] = factory
	return nil
}

func (r *registry) Create(cfg Config) (TextGenerator, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Provider]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", cfg.Provider)
	}

	return factory(cfg)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for provider := range r.factories {
		providers = append(providers, provider)
	}
	slices.Sort(providers)
	return providers
}
