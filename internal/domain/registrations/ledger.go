package registrations

import (
	"fmt"
	"math"
	"strings"

	"clinic-frontdesk/internal/domain/items"
)

// BuildLineEntry arma la línea a partir de lo elegido en el diálogo.
// El signo del reembolso se aplica acá y sólo acá; Reprice no lo vuelve a tocar.
func BuildLineEntry(cat items.Catalog, sel Selection) (LineEntry, error) {
	name := strings.TrimSpace(sel.Name)
	if name == "" {
		return LineEntry{}, fmt.Errorf("%w: item name required", ErrInvalidInput)
	}
	if sel.Quantity < 0 {
		return LineEntry{}, ErrInvalidQuantity
	}

	qty := sel.Quantity
	if sel.Refunded {
		qty = -qty
	}

	e := LineEntry{
		Name:     name,
		Quantity: qty,
		Waived:   sel.Waived,
		Refunded: sel.Refunded,
		Tags:     normalizeTags(sel.Tags),
	}
	e.Subtotal = subtotal(cat, e)
	return e, nil
}

// UpsertLineEntry reemplaza in-place la línea con el mismo nombre, o la agrega al final.
// No muta el slice recibido.
func UpsertLineEntry(entries []LineEntry, e LineEntry) []LineEntry {
	out := make([]LineEntry, len(entries), len(entries)+1)
	copy(out, entries)
	for i := range out {
		if out[i].Name == e.Name {
			out[i] = e
			return out
		}
	}
	return append(out, e)
}

func RemoveLineEntry(entries []LineEntry, name string) []LineEntry {
	out := make([]LineEntry, 0, len(entries))
	for _, e := range entries {
		if e.Name == name {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CheckStoredEntries valida líneas ya guardadas que vuelven del cliente:
// un reembolso viaja con cantidad <= 0 y una línea normal con cantidad >= 0.
func CheckStoredEntries(entries []LineEntry) error {
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: item name required", ErrInvalidInput)
		}
		if e.Refunded && e.Quantity > 0 || !e.Refunded && e.Quantity < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidQuantity, e.Name)
		}
	}
	return nil
}

// Reprice recalcula subtotales de líneas ya guardadas (cantidad con su signo tal cual).
func Reprice(cat items.Catalog, entries []LineEntry) []LineEntry {
	out := make([]LineEntry, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Tags = normalizeTags(e.Tags)
		e.Subtotal = subtotal(cat, e)
		out = append(out, e)
	}
	return out
}

// EntriesFromCounts convierte conteos por MappingKey en líneas, validando contra el catálogo.
// Conteos en cero se omiten; el orden es el del catálogo.
func EntriesFromCounts(cat items.Catalog, counts ItemCounts) ([]LineEntry, error) {
	for key, n := range counts {
		if _, ok := cat.ByKey(key); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownItem, key)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidQuantity, key)
		}
	}

	out := make([]LineEntry, 0, len(counts))
	for _, it := range cat.Items() {
		n := counts[it.MappingKey]
		if it.MappingKey == "" || n == 0 {
			continue
		}
		e := LineEntry{Name: it.Name, Quantity: n, Tags: []string{}}
		e.Subtotal = subtotal(cat, e)
		out = append(out, e)
	}
	return out, nil
}

// Total suma subtotales. Total(nil) == 0.
func Total(entries []LineEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Subtotal
	}
	return roundCents(sum)
}

// TotalWithDonation agrega la donación, que va como campo aparte y no como línea.
func TotalWithDonation(entries []LineEntry, donation float64) float64 {
	return roundCents(Total(entries) + donation)
}

func subtotal(cat items.Catalog, e LineEntry) float64 {
	if e.Waived {
		return 0
	}
	return roundCents(float64(e.Quantity) * cat.PriceOf(e.Name))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
