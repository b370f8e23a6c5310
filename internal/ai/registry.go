package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type ProviderFactory func(ctx context.Context, model string) (Provider, error)

type registration struct {
	defaultModel string
	factory      ProviderFactory
}

// Registry maps provider names to factories. Each registration carries
// the model to use when the caller does not name one.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]registration
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]registration)}
}

func (r *Registry) Register(name, defaultModel string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = registration{defaultModel: defaultModel, factory: f}
}

// Get builds a provider, substituting the registered default model when
// model is empty.
func (r *Registry) Get(ctx context.Context, name string, model string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	reg, ok := r.providers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown ai provider: %s", name)
	}
	if strings.TrimSpace(model) == "" {
		model = reg.defaultModel
	}
	return reg.factory(ctx, model)
}
