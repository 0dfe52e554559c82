package dashboard

import (
	"encoding/json"
	"fmt"

	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/ports/realtime"
)

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeDropped Outcome = "dropped"
	OutcomeIgnored Outcome = "ignored"
)

// Apply es puro: devuelve una colección nueva.
// Con date != "" sólo cuentan las filas de ese día; el resto se ignora.
//   - INSERT agrega al final (sin dedup por car_number).
//   - UPDATE reemplaza in-place la registración con el mismo car_number; si no está, se descarta.
//   - Cualquier otro evento se ignora.
func Apply(regs []registrations.Registration, date string, n realtime.Notification) ([]registrations.Registration, Outcome, error) {
	switch n.EventType {
	case realtime.EventInsert, realtime.EventUpdate:
	default:
		return regs, OutcomeIgnored, nil
	}

	var row registrations.Registration
	if err := json.Unmarshal(n.New, &row); err != nil {
		return regs, OutcomeDropped, fmt.Errorf("decode %s payload: %w", n.EventType, err)
	}
	if date != "" && row.Date != date {
		return regs, OutcomeIgnored, nil
	}

	if n.EventType == realtime.EventInsert {
		out := make([]registrations.Registration, len(regs), len(regs)+1)
		copy(out, regs)
		return append(out, row), OutcomeApplied, nil
	}

	for i := range regs {
		if regs[i].CarNumber == row.CarNumber {
			out := make([]registrations.Registration, len(regs))
			copy(out, regs)
			out[i] = row
			return out, OutcomeApplied, nil
		}
	}
	return regs, OutcomeDropped, nil
}
