package items

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	calls int
	fail  bool
	items []Item
}

func (r *countingRepo) List(ctx context.Context) ([]Item, error) {
	r.calls++
	if r.fail {
		return nil, errors.New("backend down")
	}
	return r.items, nil
}

func TestCatalog_OrderAndLookups(t *testing.T) {
	cat := NewCatalog([]Item{
		{Name: "Distemper", Price: 20, MappingKey: "distemper", Position: 2},
		{Name: "Rabies", Price: 15, MappingKey: "rabies", Position: 1},
		{Name: "Donation", MappingKey: "donation", Position: 3},
	})

	names := make([]string, 0, cat.Len())
	for _, it := range cat.Items() {
		names = append(names, it.Name)
	}
	require.Equal(t, []string{"Rabies", "Distemper", "Donation"}, names)

	require.Equal(t, 15.0, cat.PriceOf("Rabies"))
	require.Equal(t, 0.0, cat.PriceOf("Donation"))
	require.Equal(t, 0.0, cat.PriceOf("Unknown"))

	it, ok := cat.ByKey("distemper")
	require.True(t, ok)
	require.Equal(t, "Distemper", it.Name)

	_, ok = cat.ByName("nope")
	require.False(t, ok)
}

func TestService_Catalog_LoadsOnce(t *testing.T) {
	repo := &countingRepo{items: DefaultItems()}
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		cat, err := svc.Catalog(context.Background())
		require.NoError(t, err)
		require.Equal(t, len(DefaultItems()), cat.Len())
	}
	require.Equal(t, 1, repo.calls)
}

func TestService_Catalog_DoesNotCacheFailures(t *testing.T) {
	repo := &countingRepo{fail: true, items: DefaultItems()}
	svc := NewService(repo)

	_, err := svc.Catalog(context.Background())
	require.Error(t, err)

	repo.fail = false
	cat, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 15.0, cat.PriceOf(NameRabies))
	require.Equal(t, 2, repo.calls)
}
