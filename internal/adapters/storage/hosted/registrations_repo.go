package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/platform/httpclient"
)

// RegistrationsRepo habla con la tabla registrations del backend hosteado (PostgREST).
// La fila viaja con el mismo JSON que registrations.Registration.
type RegistrationsRepo struct {
	c *httpclient.Client
}

func NewRegistrationsRepo(c *httpclient.Client) *RegistrationsRepo {
	return &RegistrationsRepo{c: c}
}

func (r *RegistrationsRepo) Create(ctx context.Context, reg registrations.Registration) error {
	headers := map[string]string{"Prefer": "return=minimal"}
	err := r.c.DoJSON(ctx, http.MethodPost, tablePath(registrations.Table, nil), headers, normalize(reg), nil)
	return mapError(err)
}

func (r *RegistrationsRepo) Update(ctx context.Context, reg registrations.Registration) error {
	q := url.Values{}
	q.Set("id", eq(reg.ID))

	var rows []registrations.Registration
	headers := map[string]string{"Prefer": "return=representation"}
	if err := r.c.DoJSON(ctx, http.MethodPatch, tablePath(registrations.Table, q), headers, normalize(reg), &rows); err != nil {
		return mapError(err)
	}
	if len(rows) == 0 {
		return registrations.ErrNotFound
	}
	return nil
}

func (r *RegistrationsRepo) GetByCarNumber(ctx context.Context, car, date string) (registrations.Registration, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("car_number", eq(car))
	q.Set("date", eq(date))

	var reg registrations.Registration
	headers := map[string]string{"Accept": acceptSingle}
	if err := r.c.DoJSON(ctx, http.MethodGet, tablePath(registrations.Table, q), headers, nil, &reg); err != nil {
		return registrations.Registration{}, mapError(err)
	}
	return reg, nil
}

func (r *RegistrationsRepo) ListByDate(ctx context.Context, date string) ([]registrations.Registration, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("date", eq(date))
	q.Set("order", "car_number.asc")

	var rows []registrations.Registration
	if err := r.c.DoJSON(ctx, http.MethodGet, tablePath(registrations.Table, q), nil, nil, &rows); err != nil {
		return nil, mapError(err)
	}
	if rows == nil {
		rows = []registrations.Registration{}
	}
	return rows, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	he, ok := httpclient.AsHTTPError(err)
	if !ok {
		return err
	}
	switch {
	case he.Code == codeUnique:
		return registrations.ErrDuplicate
	case he.Code == codeNoRows || he.StatusCode == http.StatusNotFound:
		return registrations.ErrNotFound
	default:
		return fmt.Errorf("backend: %w", err)
	}
}

// El backend no acepta null en columnas jsonb NOT NULL.
func normalize(reg registrations.Registration) registrations.Registration {
	if reg.Items == nil {
		reg.Items = []registrations.LineEntry{}
	}
	if reg.Tags == nil {
		reg.Tags = []string{}
	}
	if reg.ChangeLog == nil {
		reg.ChangeLog = []registrations.ChangeLogEntry{}
	}
	return reg
}
