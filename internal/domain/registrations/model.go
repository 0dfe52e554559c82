package registrations

import "time"

// DateLayout es el formato de la fecha de clínica (un día de evento).
const DateLayout = "2006-01-02"

// LineEntry es un item cargado en una registración (a.k.a. ItemCount).
// Quantity es negativa cuando el item fue reembolsado.
type LineEntry struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Subtotal float64  `json:"subtotal"`
	Waived   bool     `json:"waived"`
	Refunded bool     `json:"refunded"`
	Tags     []string `json:"tags"`
}

// Selection es lo que elige el voluntario en el diálogo de items.
// Quantity se ingresa siempre >= 0; el signo lo decide Refunded.
type Selection struct {
	Name     string
	Quantity int
	Waived   bool
	Refunded bool
	Tags     []string
}

// ItemCounts mapea MappingKey del catálogo -> cantidad (formulario de pago rápido).
type ItemCounts map[string]int

// Registration es una visita (auto) en un día de clínica.
// (CarNumber, Date) es único.
//
// Los tags json son el formato de fila: se usan en el payload de realtime
// y contra el backend hosteado.
type Registration struct {
	ID        string `json:"id"`
	CarNumber string `json:"car_number"`
	Date      string `json:"date"`

	NumDogs int `json:"num_dogs"`
	NumCats int `json:"num_cats"`

	Items []LineEntry `json:"items"`

	// Medios de pago; no son excluyentes.
	Credit bool `json:"credit"`
	Cash   bool `json:"cash"`

	Donation float64 `json:"donation"`
	Total    float64 `json:"total"` // derivado, persistido redundante

	Comments string   `json:"comments"`
	Tags     []string `json:"tags"`
	Paid     bool     `json:"paid"`

	ChangeLog []ChangeLogEntry `json:"change_log"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot es el subconjunto comparable de una registración (lo que audita el change log).
type Snapshot struct {
	CarNumber string
	Cash      bool
	Credit    bool
	Total     float64
	Items     []LineEntry
	NumCats   int
	NumDogs   int
	Comments  string
	Tags      []string
	Paid      bool
}

func (r Registration) Snapshot() Snapshot {
	return Snapshot{
		CarNumber: r.CarNumber,
		Cash:      r.Cash,
		Credit:    r.Credit,
		Total:     r.Total,
		Items:     r.Items,
		NumCats:   r.NumCats,
		NumDogs:   r.NumDogs,
		Comments:  r.Comments,
		Tags:      r.Tags,
		Paid:      r.Paid,
	}
}
