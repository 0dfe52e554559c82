package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clinic-frontdesk/internal/domain/items"
	"clinic-frontdesk/internal/platform/httpclient"
)

type ItemsRepo struct {
	c *httpclient.Client
}

func NewItemsRepo(c *httpclient.Client) *ItemsRepo {
	return &ItemsRepo{c: c}
}

type itemRow struct {
	ID         any     `json:"id"` // serial o uuid según la instalación
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	MappingKey *string `json:"mapping_key"`
	Position   int     `json:"position"`
}

func (r *ItemsRepo) List(ctx context.Context) ([]items.Item, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "position.asc,name.asc")

	var rows []itemRow
	if err := r.c.DoJSON(ctx, http.MethodGet, tablePath("items", q), nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	out := make([]items.Item, 0, len(rows))
	for _, row := range rows {
		it := items.Item{
			ID:       fmt.Sprint(row.ID),
			Name:     row.Name,
			Price:    row.Price,
			Position: row.Position,
		}
		if row.MappingKey != nil {
			it.MappingKey = *row.MappingKey
		}
		out = append(out, it)
	}
	return out, nil
}
