package form

import (
	"context"
	"sync"

	"github.com/bancoplus/catalog/model"
)

// ProductLister supplies the product collection for prefill lookups.
// *products.ListCache satisfies it, so the edit screen shares the list
// screen's snapshot instead of refetching.
type ProductLister interface {
	Get(ctx context.Context) ([]model.Product, error)
}

// Prefill loads an existing product's values into the edit form exactly
// once per product identity. Repeated Load calls for the same id are
// no-ops, so a form already being edited is never clobbered by a refetch;
// a different id re-arms the prefill.
type Prefill struct {
	lister ProductLister
	// apply pushes the resolved value set into the form, typically
	// Workflow.Reset.
	apply func(Values)

	mu              sync.Mutex
	lastPrefilledID string
	applied         bool
	loading         bool
	notFound        bool
	err             error
	values          Values
}

// NewPrefill creates a Prefill that resolves products through lister and
// hands the resolved values to apply.
func NewPrefill(lister ProductLister, apply func(Values)) *Prefill {
	return &Prefill{lister: lister, apply: apply}
}

// Load resolves productID against the collection and applies its values.
// An empty productID marks the target as missing without fetching. Once a
// product has been applied, further Load calls for the same id return
// immediately; a failed fetch does not latch, so the next Load retries.
func (p *Prefill) Load(ctx context.Context, productID string) {
	p.mu.Lock()
	if p.applied && p.lastPrefilledID == productID {
		p.mu.Unlock()
		return
	}
	p.err = nil
	p.notFound = false

	if productID == "" {
		p.notFound = true
		p.mu.Unlock()
		return
	}
	p.loading = true
	p.mu.Unlock()

	list, err := p.lister.Get(ctx)

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.err = err
		p.mu.Unlock()
		return
	}
	var found *model.Product
	for i := range list {
		if list[i].ID == productID {
			found = &list[i]
			break
		}
	}
	if found == nil {
		p.notFound = true
		p.mu.Unlock()
		return
	}
	values := ValuesFromProduct(*found)
	p.values = values
	p.applied = true
	p.lastPrefilledID = productID
	apply := p.apply
	p.mu.Unlock()

	if apply != nil {
		apply(values)
	}
}

// Loading reports whether a prefill fetch is in flight.
func (p *Prefill) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the fetch error from the last attempted prefill, nil when it
// succeeded or never ran.
func (p *Prefill) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// NotFound reports whether the edit target is missing: no product id was
// given, or the collection materialized without a matching product. A
// fetch failure is not a not-found.
func (p *Prefill) NotFound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notFound
}

// Values returns the last successfully resolved value set.
func (p *Prefill) Values() Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values
}
