package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"clinic-frontdesk/internal/domain/registrations"
)

type registrationsRepo struct {
	mu    sync.RWMutex
	byID  map[string]registrations.Registration
	byKey map[string]string // car_number|date -> id
}

func NewRegistrationsRepo() registrations.Repository {
	return &registrationsRepo{
		byID:  make(map[string]registrations.Registration),
		byKey: make(map[string]string),
	}
}

func key(car, date string) string { return car + "|" + date }

func (r *registrationsRepo) Create(ctx context.Context, reg registrations.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(reg.ID) == "" {
		return errors.New("registration id required")
	}
	if _, exists := r.byID[reg.ID]; exists {
		return registrations.ErrDuplicate
	}
	k := key(reg.CarNumber, reg.Date)
	if _, exists := r.byKey[k]; exists {
		return registrations.ErrDuplicate
	}
	r.byID[reg.ID] = clone(reg)
	r.byKey[k] = reg.ID
	return nil
}

func (r *registrationsRepo) Update(ctx context.Context, reg registrations.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[reg.ID]
	if !exists {
		return registrations.ErrNotFound
	}

	oldKey, newKey := key(prev.CarNumber, prev.Date), key(reg.CarNumber, reg.Date)
	if oldKey != newKey {
		if _, taken := r.byKey[newKey]; taken {
			return registrations.ErrDuplicate
		}
		delete(r.byKey, oldKey)
		r.byKey[newKey] = reg.ID
	}
	r.byID[reg.ID] = clone(reg)
	return nil
}

func (r *registrationsRepo) GetByCarNumber(ctx context.Context, car, date string) (registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key(car, date)]
	if !ok {
		return registrations.Registration{}, registrations.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *registrationsRepo) ListByDate(ctx context.Context, date string) ([]registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registrations.Registration, 0)
	for _, reg := range r.byID {
		if reg.Date == date {
			out = append(out, clone(reg))
		}
	}
	registrations.SortByCarNumber(out)
	return out, nil
}

// clone evita que el caller comparta slices con lo guardado.
func clone(reg registrations.Registration) registrations.Registration {
	out := reg
	if reg.Items != nil {
		out.Items = make([]registrations.LineEntry, len(reg.Items))
		for i, e := range reg.Items {
			e.Tags = append([]string(nil), e.Tags...)
			out.Items[i] = e
		}
	}
	if reg.Tags != nil {
		out.Tags = append([]string(nil), reg.Tags...)
	}
	if reg.ChangeLog != nil {
		out.ChangeLog = append([]registrations.ChangeLogEntry(nil), reg.ChangeLog...)
	}
	return out
}
