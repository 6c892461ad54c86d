package recognition

import (
	"fmt"
	"sync"
)

// Creator builds a provider from the optional per-provider settings block
// of providers.yaml. Provider packages register their creator from init().
type Creator func(settings map[string]interface{}) (Provider, error)

var (
	creatorMu    sync.RWMutex
	creators     = make(map[string]Creator)
	creatorOrder []string
)

// RegisterCreator registers a provider creator under its id. Called from
// provider package init(); duplicate registration is a programming error
// and panics.
func RegisterCreator(id string, creator Creator) {
	creatorMu.Lock()
	defer creatorMu.Unlock()

	if _, exists := creators[id]; exists {
		panic(fmt.Sprintf("recognition: provider %q registered twice", id))
	}
	creators[id] = creator
	creatorOrder = append(creatorOrder, id)
}

// Registry is the immutable catalog of recognition backends, built once at
// startup from the registered creators.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// BuildRegistry instantiates every registered provider. settings maps
// provider id to its tuning block; providers without a block receive nil.
func BuildRegistry(settings map[string]map[string]interface{}) (*Registry, error) {
	creatorMu.RLock()
	defer creatorMu.RUnlock()

	r := &Registry{providers: make(map[string]Provider, len(creators))}
	for _, id := range creatorOrder {
		p, err := creators[id](settings[id])
		if err != nil {
			return nil, fmt.Errorf("build provider %q: %w", id, err)
		}
		if p.Info().ID != id {
			return nil, fmt.Errorf("provider %q reports id %q", id, p.Info().ID)
		}
		r.providers[id] = p
		r.order = append(r.order, id)
	}
	return r, nil
}

// Resolve returns the provider registered under id.
func (r *Registry) Resolve(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %q not found", id)
	}
	return p, nil
}

// List returns all providers in registration order.
func (r *Registry) List() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.providers[id])
	}
	return out
}
