package items

import (
	"context"
	"sync"
)

// Service carga el catálogo una vez por proceso.
// Un load fallido no se cachea: el siguiente request vuelve a intentar.
type Service struct {
	repo Repository

	mu     sync.Mutex
	loaded bool
	cat    Catalog
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cat, nil
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return Catalog{}, err
	}

	s.cat = NewCatalog(list)
	s.loaded = true
	return s.cat, nil
}
