package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-frontdesk/internal/domain/items"
)

type ItemsRepo struct {
	db *sql.DB
}

func NewItemsRepo(db *sql.DB) *ItemsRepo {
	return &ItemsRepo{db: db}
}

func (r *ItemsRepo) List(ctx context.Context) ([]items.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price::float8, COALESCE(mapping_key, ''), position
		FROM items
		ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]items.Item, 0)
	for rows.Next() {
		var it items.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.MappingKey, &it.Position); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Upsert carga/actualiza el catálogo por id en una transacción.
func (r *ItemsRepo) Upsert(ctx context.Context, in []items.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range in {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, name, price, mapping_key, position)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				mapping_key = EXCLUDED.mapping_key,
				position = EXCLUDED.position
		`, it.ID, it.Name, it.Price, it.MappingKey, it.Position); err != nil {
			return fmt.Errorf("upsert item %q: %w", it.Name, err)
		}
	}
	return tx.Commit()
}
