package memory

import (
	"context"
	"sync"

	"clinic-frontdesk/internal/domain/items"
)

type itemsRepo struct {
	mu    sync.RWMutex
	items []items.Item
}

// NewItemsRepo arranca con el catálogo dado (o DefaultItems si es nil).
func NewItemsRepo(seed []items.Item) items.Repository {
	if seed == nil {
		seed = items.DefaultItems()
	}
	cp := make([]items.Item, len(seed))
	copy(cp, seed)
	return &itemsRepo{items: cp}
}

func (r *itemsRepo) List(ctx context.Context) ([]items.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]items.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}
