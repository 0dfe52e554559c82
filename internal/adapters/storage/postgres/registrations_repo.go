package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"clinic-frontdesk/internal/domain/registrations"
)

type RegistrationsRepo struct {
	db *sql.DB
}

func NewRegistrationsRepo(db *sql.DB) *RegistrationsRepo {
	return &RegistrationsRepo{db: db}
}

const selectRegistration = `
	SELECT
		id::text, car_number, date::text,
		num_dogs, num_cats, items,
		credit, cash, donation::float8, total::float8,
		comments, tags, paid, change_log,
		created_at, updated_at
	FROM registrations
`

func (r *RegistrationsRepo) Create(ctx context.Context, reg registrations.Registration) error {
	js, err := encodeJSONColumns(reg)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO registrations (
			id, car_number, date,
			num_dogs, num_cats, items,
			credit, cash, donation, total,
			comments, tags, paid, change_log,
			created_at, updated_at
		) VALUES ($1,$2,$3::date,$4,$5,$6::jsonb,$7,$8,$9,$10,$11,$12::jsonb,$13,$14::jsonb,$15,$16)
	`,
		reg.ID, reg.CarNumber, reg.Date,
		reg.NumDogs, reg.NumCats, js.items,
		reg.Credit, reg.Cash, reg.Donation, reg.Total,
		reg.Comments, js.tags, reg.Paid, js.changeLog,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return registrations.ErrDuplicate
	}
	return err
}

func (r *RegistrationsRepo) Update(ctx context.Context, reg registrations.Registration) error {
	js, err := encodeJSONColumns(reg)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET
			car_number = $2,
			num_dogs = $3,
			num_cats = $4,
			items = $5::jsonb,
			credit = $6,
			cash = $7,
			donation = $8,
			total = $9,
			comments = $10,
			tags = $11::jsonb,
			paid = $12,
			change_log = $13::jsonb,
			updated_at = $14
		WHERE id = $1
	`,
		reg.ID,
		reg.CarNumber,
		reg.NumDogs,
		reg.NumCats,
		js.items,
		reg.Credit,
		reg.Cash,
		reg.Donation,
		reg.Total,
		reg.Comments,
		js.tags,
		reg.Paid,
		js.changeLog,
		reg.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return registrations.ErrDuplicate
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return registrations.ErrNotFound
	}
	return nil
}

func (r *RegistrationsRepo) GetByCarNumber(ctx context.Context, car, date string) (registrations.Registration, error) {
	car = strings.TrimSpace(car)
	if car == "" {
		return registrations.Registration{}, registrations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectRegistration+`WHERE car_number = $1 AND date = $2::date`, car, date)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return registrations.Registration{}, registrations.ErrNotFound
	}
	return reg, err
}

func (r *RegistrationsRepo) ListByDate(ctx context.Context, date string) ([]registrations.Registration, error) {
	rows, err := r.db.QueryContext(ctx, selectRegistration+`WHERE date = $1::date ORDER BY car_number ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]registrations.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(s scanner) (registrations.Registration, error) {
	var (
		reg                       registrations.Registration
		itemsRaw, tagsRaw, logRaw []byte
	)
	if err := s.Scan(
		&reg.ID, &reg.CarNumber, &reg.Date,
		&reg.NumDogs, &reg.NumCats, &itemsRaw,
		&reg.Credit, &reg.Cash, &reg.Donation, &reg.Total,
		&reg.Comments, &tagsRaw, &reg.Paid, &logRaw,
		&reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return registrations.Registration{}, err
	}

	if err := decodeJSON(itemsRaw, &reg.Items); err != nil {
		return registrations.Registration{}, fmt.Errorf("items column: %w", err)
	}
	if err := decodeJSON(tagsRaw, &reg.Tags); err != nil {
		return registrations.Registration{}, fmt.Errorf("tags column: %w", err)
	}
	if err := decodeJSON(logRaw, &reg.ChangeLog); err != nil {
		return registrations.Registration{}, fmt.Errorf("change_log column: %w", err)
	}
	return reg, nil
}

type jsonColumns struct {
	items, tags, changeLog string
}

// JSONB va como texto + cast en el SQL.
func encodeJSONColumns(reg registrations.Registration) (jsonColumns, error) {
	var out jsonColumns
	for _, c := range []struct {
		dst *string
		v   any
	}{
		{&out.items, nonNil(reg.Items)},
		{&out.tags, nonNil(reg.Tags)},
		{&out.changeLog, nonNil(reg.ChangeLog)},
	} {
		b, err := json.Marshal(c.v)
		if err != nil {
			return jsonColumns{}, err
		}
		*c.dst = string(b)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
