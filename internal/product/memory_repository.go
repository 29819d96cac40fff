package product

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewMemoryRepository builds an in-memory product store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{products: make(map[string]Product)}
}

func (r *memoryRepository) Create(_ context.Context, p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) Get(_ context.Context, ownerID, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) Update(_ context.Context, p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}
