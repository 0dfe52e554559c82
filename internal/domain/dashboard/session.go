package dashboard

import (
	"sync"

	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/ports/realtime"
)

// Session es la colección en memoria del dashboard en vivo para un día de clínica.
// Un solo writer (el loop del Reconciler); las lecturas toman snapshots.
type Session struct {
	mu   sync.RWMutex
	date string
	regs []registrations.Registration
}

// NewSession con date vacío acepta filas de cualquier día.
func NewSession(date string, initial []registrations.Registration) *Session {
	s := &Session{}
	s.Reset(date, initial)
	return s
}

func (s *Session) Apply(n realtime.Notification) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, outcome, err := Apply(s.regs, s.date, n)
	if err != nil {
		return outcome, err
	}
	s.regs = next
	return outcome, nil
}

// Reset reemplaza el día y su colección (carga inicial o cambio de día).
func (s *Session) Reset(date string, regs []registrations.Registration) {
	cp := make([]registrations.Registration, len(regs))
	copy(cp, regs)

	s.mu.Lock()
	s.date = date
	s.regs = cp
	s.mu.Unlock()
}

func (s *Session) Date() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

func (s *Session) Snapshot() []registrations.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]registrations.Registration, len(s.regs))
	copy(out, s.regs)
	return out
}

func (s *Session) Summary() Summary {
	return Summarize(s.Snapshot())
}
