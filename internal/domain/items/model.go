package items

import "sort"

// Nombres con significado propio para el dashboard y el formulario de pago.
const (
	NameRabies    = "Rabies"
	NameDistemper = "Distemper"
	NameDonation  = "Donation"
)

// Item es un producto/servicio del catálogo de la clínica.
// Es dato de referencia: se carga una vez y no se modifica desde la app.
type Item struct {
	ID   string
	Name string // label único

	Price float64 // >= 0; "Donation" no tiene precio fijo

	// MappingKey es la key estable con la que se guardan conteos (formulario de pago).
	MappingKey string

	Position int
}

// Catalog es la vista inmutable y ordenada del catálogo.
type Catalog struct {
	items  []Item
	byName map[string]Item
	byKey  map[string]Item
}

func NewCatalog(in []Item) Catalog {
	ordered := make([]Item, len(in))
	copy(ordered, in)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].Name < ordered[j].Name
	})

	c := Catalog{
		items:  ordered,
		byName: make(map[string]Item, len(ordered)),
		byKey:  make(map[string]Item, len(ordered)),
	}
	for _, it := range ordered {
		c.byName[it.Name] = it
		if it.MappingKey != "" {
			c.byKey[it.MappingKey] = it
		}
	}
	return c
}

// Items devuelve una copia en orden de catálogo.
func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c Catalog) ByName(name string) (Item, bool) {
	it, ok := c.byName[name]
	return it, ok
}

func (c Catalog) ByKey(key string) (Item, bool) {
	it, ok := c.byKey[key]
	return it, ok
}

// PriceOf devuelve 0 si el item no existe.
func (c Catalog) PriceOf(name string) float64 {
	return c.byName[name].Price
}

func (c Catalog) Len() int { return len(c.items) }

// DefaultItems es el catálogo semilla del modo in-memory.
func DefaultItems() []Item {
	return []Item{
		{ID: "1", Name: NameRabies, Price: 15, MappingKey: "rabies", Position: 1},
		{ID: "2", Name: NameDistemper, Price: 20, MappingKey: "distemper", Position: 2},
		{ID: "3", Name: "Microchip", Price: 25, MappingKey: "microchip", Position: 3},
		{ID: "4", Name: "Nail Trim", Price: 5, MappingKey: "nail_trim", Position: 4},
		{ID: "5", Name: NameDonation, Price: 0, MappingKey: "donation", Position: 5},
	}
}
