package registrations

import "context"

// Table es el nombre de la tabla (y del canal de realtime).
const Table = "registrations"

type Repository interface {
	// Create devuelve ErrDuplicate si ya existe (car_number, date).
	Create(ctx context.Context, r Registration) error
	// Update reemplaza la fila por ID. ErrNotFound / ErrDuplicate.
	Update(ctx context.Context, r Registration) error
	GetByCarNumber(ctx context.Context, carNumber, date string) (Registration, error)
	ListByDate(ctx context.Context, date string) ([]Registration, error)
}
