package realtime

import (
	"context"
	"encoding/json"
	"errors"
)

// EventType es el tipo de cambio de fila notificado por el backend.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"

	// EventAll se usa sólo al suscribirse.
	EventAll EventType = "*"
)

// Notification es un cambio de fila. New/Old son la fila en JSON.
type Notification struct {
	EventType EventType       `json:"eventType"`
	Table     string          `json:"table"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}

var ErrClosed = errors.New("realtime: closed")

// Publisher emite notificaciones después de una escritura exitosa.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// Subscriber abre una suscripción a los cambios de una tabla.
// event == EventAll recibe todos los tipos.
type Subscriber interface {
	Subscribe(ctx context.Context, table string, event EventType) (Subscription, error)
}

// Subscription entrega notificaciones en orden de llegada.
// C() se cierra cuando la suscripción termina (Close o caída del transporte).
type Subscription interface {
	C() <-chan Notification
	Close() error
}

// Matches reporta si n corresponde al filtro (table, event).
func Matches(n Notification, table string, event EventType) bool {
	if n.Table != table {
		return false
	}
	return event == EventAll || event == "" || n.EventType == event
}
