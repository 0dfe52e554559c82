package registrations

import (
	"errors"
	"testing"

	"clinic-frontdesk/internal/domain/items"

	"github.com/stretchr/testify/require"
)

func rabiesCatalog() items.Catalog {
	return items.NewCatalog([]items.Item{
		{ID: "1", Name: "Rabies", Price: 15, MappingKey: "rabies", Position: 1},
		{ID: "2", Name: "Distemper", Price: 20, MappingKey: "distemper", Position: 2},
		{ID: "3", Name: "Nail Trim", Price: 5.5, MappingKey: "nail_trim", Position: 3},
	})
}

func TestBuildLineEntry_SubtotalAndTotal(t *testing.T) {
	e, err := BuildLineEntry(rabiesCatalog(), Selection{Name: "Rabies", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 3, e.Quantity)
	require.Equal(t, 45.0, e.Subtotal)
	require.Equal(t, 45.0, Total([]LineEntry{e}))
}

func TestBuildLineEntry_RefundFlipsSignOnce(t *testing.T) {
	cat := rabiesCatalog()
	e, err := BuildLineEntry(cat, Selection{Name: "Rabies", Quantity: 2, Refunded: true})
	require.NoError(t, err)
	require.Equal(t, -2, e.Quantity)
	require.Equal(t, -30.0, e.Subtotal)

	// Reprice sobre lo guardado no vuelve a invertir.
	again := Reprice(cat, []LineEntry{e})
	require.Equal(t, -2, again[0].Quantity)
	require.Equal(t, -30.0, again[0].Subtotal)
}

func TestBuildLineEntry_WaivedIsFree(t *testing.T) {
	e, err := BuildLineEntry(rabiesCatalog(), Selection{Name: "Distemper", Quantity: 4, Waived: true})
	require.NoError(t, err)
	require.Equal(t, 4, e.Quantity)
	require.Zero(t, e.Subtotal)
}

func TestBuildLineEntry_UnknownItemHasNoPrice(t *testing.T) {
	e, err := BuildLineEntry(rabiesCatalog(), Selection{Name: "Donation", Quantity: 1})
	require.NoError(t, err)
	require.Zero(t, e.Subtotal)
}

func TestBuildLineEntry_Rejects(t *testing.T) {
	_, err := BuildLineEntry(rabiesCatalog(), Selection{Name: " ", Quantity: 1})
	require.True(t, errors.Is(err, ErrInvalidInput))

	_, err = BuildLineEntry(rabiesCatalog(), Selection{Name: "Rabies", Quantity: -1})
	require.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestUpsertLineEntry_ReplacesByName(t *testing.T) {
	cat := rabiesCatalog()
	a, _ := BuildLineEntry(cat, Selection{Name: "Rabies", Quantity: 1})
	b, _ := BuildLineEntry(cat, Selection{Name: "Distemper", Quantity: 1})
	a2, _ := BuildLineEntry(cat, Selection{Name: "Rabies", Quantity: 2})

	in := []LineEntry{a, b}
	out := UpsertLineEntry(in, a2)

	require.Len(t, out, 2)
	require.Equal(t, "Rabies", out[0].Name)
	require.Equal(t, 2, out[0].Quantity)
	require.Equal(t, 1, in[0].Quantity, "input must not be mutated")

	c, _ := BuildLineEntry(cat, Selection{Name: "Nail Trim", Quantity: 1})
	out = UpsertLineEntry(out, c)
	require.Len(t, out, 3)
	require.Equal(t, "Nail Trim", out[2].Name)

	out = RemoveLineEntry(out, "Distemper")
	require.Equal(t, []string{"Rabies", "Nail Trim"}, entryNames(out))
}

func TestTotal(t *testing.T) {
	require.Zero(t, Total(nil))

	cat := rabiesCatalog()
	trim, _ := BuildLineEntry(cat, Selection{Name: "Nail Trim", Quantity: 3})
	rab, _ := BuildLineEntry(cat, Selection{Name: "Rabies", Quantity: 1, Refunded: true})
	require.Equal(t, 1.5, Total([]LineEntry{trim, rab}))
	require.Equal(t, 11.5, TotalWithDonation([]LineEntry{trim, rab}, 10))
}

func TestEntriesFromCounts(t *testing.T) {
	cat := rabiesCatalog()

	out, err := EntriesFromCounts(cat, ItemCounts{"distemper": 1, "rabies": 2, "nail_trim": 0})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Rabies", out[0].Name)
	require.Equal(t, 30.0, out[0].Subtotal)
	require.Equal(t, "Distemper", out[1].Name)

	_, err = EntriesFromCounts(cat, ItemCounts{"bogus": 1})
	require.True(t, errors.Is(err, ErrUnknownItem))

	_, err = EntriesFromCounts(cat, ItemCounts{"rabies": -1})
	require.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestCheckStoredEntries(t *testing.T) {
	cat := rabiesCatalog()
	refund, err := BuildLineEntry(cat, Selection{Name: "Rabies", Quantity: 2, Refunded: true})
	require.NoError(t, err)

	require.NoError(t, CheckStoredEntries(nil))
	require.NoError(t, CheckStoredEntries([]LineEntry{refund, {Name: "Distemper", Quantity: 1}}))

	require.ErrorIs(t, CheckStoredEntries([]LineEntry{{Name: "Rabies", Quantity: 2, Refunded: true}}), ErrInvalidQuantity)
	require.ErrorIs(t, CheckStoredEntries([]LineEntry{{Name: "Rabies", Quantity: -1}}), ErrInvalidQuantity)
	require.ErrorIs(t, CheckStoredEntries([]LineEntry{{Name: " ", Quantity: 1}}), ErrInvalidInput)
}
