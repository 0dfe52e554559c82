package dashboard

import (
	"clinic-frontdesk/internal/domain/items"
	"clinic-frontdesk/internal/domain/registrations"
)

// AggregateCounts son los totales de un grupo (pagados o pendientes).
type AggregateCounts struct {
	TotalDogs           int `json:"total_dogs"`
	TotalCats           int `json:"total_cats"`
	TotalRabiesDoses    int `json:"total_rabies"`
	TotalDistemperDoses int `json:"total_distemper"`
	Registrations       int `json:"registrations"`
}

type Summary struct {
	Paid   AggregateCounts `json:"paid"`
	Unpaid AggregateCounts `json:"unpaid"`
}

// Partition separa por Paid sin mutar la entrada.
func Partition(regs []registrations.Registration) (paid, unpaid []registrations.Registration) {
	paid = []registrations.Registration{}
	unpaid = []registrations.Registration{}
	for _, r := range regs {
		if r.Paid {
			paid = append(paid, r)
		} else {
			unpaid = append(unpaid, r)
		}
	}
	return paid, unpaid
}

// Aggregate suma animales y dosis. Las dosis son la cantidad (con signo) de las
// líneas llamadas exactamente "Rabies" / "Distemper".
func Aggregate(regs []registrations.Registration) AggregateCounts {
	var c AggregateCounts
	for _, r := range regs {
		c.Registrations++
		c.TotalDogs += r.NumDogs
		c.TotalCats += r.NumCats
		for _, e := range r.Items {
			switch e.Name {
			case items.NameRabies:
				c.TotalRabiesDoses += e.Quantity
			case items.NameDistemper:
				c.TotalDistemperDoses += e.Quantity
			}
		}
	}
	return c
}

// Summarize re-deriva todo en cada llamada.
func Summarize(regs []registrations.Registration) Summary {
	paid, unpaid := Partition(regs)
	return Summary{Paid: Aggregate(paid), Unpaid: Aggregate(unpaid)}
}
