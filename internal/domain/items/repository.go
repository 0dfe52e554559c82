package items

import "context"

type Repository interface {
	List(ctx context.Context) ([]Item, error)
}
