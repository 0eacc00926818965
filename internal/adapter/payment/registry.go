package payment

import "github.com/djolof-farm/backend/internal/domain/model"

// Registry dispatches initiation to the provider registered for the stored
// payment-method tag.
type Registry struct {
	providers map[model.PaymentMethod]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[model.PaymentMethod]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Method()] = p
	}
	return r
}

func (r *Registry) Get(method model.PaymentMethod) (Provider, bool) {
	p, ok := r.providers[method]
	return p, ok
}
