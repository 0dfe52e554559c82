package catalogfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clinic-frontdesk/internal/domain/items"

	"github.com/BurntSushi/toml"
)

// File es el formato TOML del catálogo:
//
//	[[item]]
//	name = "Rabies"
//	price = 15
//	key = "rabies"
type File struct {
	Items []entry `toml:"item"`
}

type entry struct {
	ID    string  `toml:"id"`
	Name  string  `toml:"name"`
	Price float64 `toml:"price"`
	Key   string  `toml:"key"`
}

// Load lee y valida el archivo. La posición es el orden en el archivo.
func Load(path string) ([]items.Item, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f.toItems()
}

// Parse es Load sobre un string (tests, seeds embebidos).
func Parse(data string) ([]items.Item, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return f.toItems()
}

func (f File) toItems() ([]items.Item, error) {
	seenName := map[string]bool{}
	seenKey := map[string]bool{}

	out := make([]items.Item, 0, len(f.Items))
	for i, e := range f.Items {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: name required", i+1)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("item %q: price must be >= 0", name)
		}
		if seenName[name] {
			return nil, fmt.Errorf("item %q: duplicate name", name)
		}
		seenName[name] = true

		key := strings.TrimSpace(e.Key)
		if key != "" {
			if seenKey[key] {
				return nil, fmt.Errorf("item %q: duplicate key %q", name, key)
			}
			seenKey[key] = true
		}

		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		out = append(out, items.Item{ID: id, Name: name, Price: e.Price, MappingKey: key, Position: i + 1})
	}
	return out, nil
}

// Repo sirve el catálogo de un archivo como items.Repository.
type Repo struct {
	path string
}

func NewRepo(path string) *Repo { return &Repo{path: path} }

func (r *Repo) List(ctx context.Context) ([]items.Item, error) {
	return Load(r.path)
}
