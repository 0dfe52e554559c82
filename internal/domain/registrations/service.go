package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-frontdesk/internal/domain/items"
	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/ports/realtime"

	"github.com/google/uuid"
)

const (
	NoteCreated = "registration created"
	NotePayment = "payment recorded"
)

// CatalogSource es lo que el servicio necesita del catálogo (items.Service lo cumple).
type CatalogSource interface {
	Catalog(ctx context.Context) (items.Catalog, error)
}

// Recorder cuenta escrituras por operación y resultado.
type Recorder interface {
	RegistrationWrite(op, result string)
}

type Options struct {
	Publisher realtime.Publisher
	Logger    logger.Logger
	Recorder  Recorder

	// Location define qué es "hoy" en la clínica. Default: UTC.
	Location *time.Location
}

type Service struct {
	repo    Repository
	catalog CatalogSource
	pub     realtime.Publisher
	log     logger.Logger
	rec     Recorder
	loc     *time.Location
	now     func() time.Time
}

func NewService(repo Repository, catalog CatalogSource, opts Options) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		pub:     opts.Publisher,
		log:     opts.Logger,
		rec:     opts.Recorder,
		loc:     opts.Location,
		now:     time.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

// Today devuelve la fecha actual de la clínica (YYYY-MM-DD).
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

type CreateInput struct {
	CarNumber string
	Date      string // vacío = hoy

	NumDogs int
	NumCats int

	Selections []Selection

	Credit   bool
	Cash     bool
	Donation float64

	Comments string
	Tags     []string
	Paid     bool

	VolunteerInitials string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Registration, error) {
	reg, err := s.create(ctx, in)
	s.record("create", err)
	return reg, err
}

func (s *Service) create(ctx context.Context, in CreateInput) (Registration, error) {
	car, date, initials, err := s.validateHeader(in.CarNumber, in.Date, in.VolunteerInitials)
	if err != nil {
		return Registration{}, err
	}
	if in.NumDogs < 0 || in.NumCats < 0 {
		return Registration{}, fmt.Errorf("%w: animal counts must be >= 0", ErrInvalidInput)
	}
	if in.Donation < 0 {
		return Registration{}, fmt.Errorf("%w: donation must be >= 0", ErrInvalidInput)
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return Registration{}, fmt.Errorf("load catalog: %w", err)
	}

	var entries []LineEntry
	for _, sel := range in.Selections {
		e, err := BuildLineEntry(cat, sel)
		if err != nil {
			return Registration{}, err
		}
		entries = UpsertLineEntry(entries, e)
	}
	if entries == nil {
		entries = []LineEntry{}
	}

	now := s.now()
	reg := Registration{
		ID:        uuid.NewString(),
		CarNumber: car,
		Date:      date,
		NumDogs:   in.NumDogs,
		NumCats:   in.NumCats,
		Items:     entries,
		Credit:    in.Credit,
		Cash:      in.Cash,
		Donation:  roundCents(in.Donation),
		Total:     TotalWithDonation(entries, in.Donation),
		Comments:  strings.TrimSpace(in.Comments),
		Tags:      normalizeTags(in.Tags),
		Paid:      in.Paid,
		ChangeLog: []ChangeLogEntry{{
			Action:            NoteAction(NoteCreated),
			Timestamp:         now,
			VolunteerInitials: initials,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return Registration{}, err
	}

	s.publish(ctx, realtime.EventInsert, reg)
	s.log.Info("registration created", map[string]any{"car_number": reg.CarNumber, "date": reg.Date, "total": reg.Total})
	return reg, nil
}

// PaymentInput es el formulario de pago rápido: conteos por MappingKey.
type PaymentInput struct {
	CarNumber string
	Date      string

	NumDogs int
	NumCats int

	Counts   ItemCounts
	Donation float64

	Credit bool
	Cash   bool
	Waived bool

	VolunteerInitials string
}

// RecordPayment crea una registración ya pagada. Exige medio de pago y total > 0.
func (s *Service) RecordPayment(ctx context.Context, in PaymentInput) (Registration, error) {
	reg, err := s.recordPayment(ctx, in)
	s.record("payment", err)
	return reg, err
}

func (s *Service) recordPayment(ctx context.Context, in PaymentInput) (Registration, error) {
	car, date, initials, err := s.validateHeader(in.CarNumber, in.Date, in.VolunteerInitials)
	if err != nil {
		return Registration{}, err
	}
	if !in.Credit && !in.Cash {
		return Registration{}, ErrPaymentMethodRequired
	}
	if in.NumDogs < 0 || in.NumCats < 0 || in.Donation < 0 {
		return Registration{}, fmt.Errorf("%w: negative amounts", ErrInvalidInput)
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return Registration{}, fmt.Errorf("load catalog: %w", err)
	}

	entries, err := EntriesFromCounts(cat, in.Counts)
	if err != nil {
		return Registration{}, err
	}
	if in.Waived {
		for i := range entries {
			entries[i].Waived = true
			entries[i].Subtotal = 0
		}
	}

	total := TotalWithDonation(entries, in.Donation)
	if total <= 0 {
		return Registration{}, ErrEmptyPayment
	}

	now := s.now()
	reg := Registration{
		ID:        uuid.NewString(),
		CarNumber: car,
		Date:      date,
		NumDogs:   in.NumDogs,
		NumCats:   in.NumCats,
		Items:     entries,
		Credit:    in.Credit,
		Cash:      in.Cash,
		Donation:  roundCents(in.Donation),
		Total:     total,
		Tags:      []string{},
		Paid:      true,
		ChangeLog: []ChangeLogEntry{{
			Action:            NoteAction(NotePayment),
			Timestamp:         now,
			VolunteerInitials: initials,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return Registration{}, err
	}

	s.publish(ctx, realtime.EventInsert, reg)
	s.log.Info("payment recorded", map[string]any{"car_number": reg.CarNumber, "date": reg.Date, "total": reg.Total})
	return reg, nil
}

// Get busca por (car_number, date). date vacío = hoy.
func (s *Service) Get(ctx context.Context, carNumber, date string) (Registration, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return Registration{}, err
	}
	carNumber = strings.TrimSpace(carNumber)
	if carNumber == "" {
		return Registration{}, fmt.Errorf("%w: car number required", ErrInvalidInput)
	}
	return s.repo.GetByCarNumber(ctx, carNumber, date)
}

// ListByDate devuelve las registraciones del día en orden natural de car_number.
func (s *Service) ListByDate(ctx context.Context, date string) ([]Registration, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	regs, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	SortByCarNumber(regs)
	return regs, nil
}

// UpdateInput es el formulario de edición completo (reemplaza todos los campos editables).
type UpdateInput struct {
	CarNumber string // vacío = no cambia

	NumDogs int
	NumCats int

	Items []LineEntry

	Credit   bool
	Cash     bool
	Donation float64

	Comments string
	Tags     []string
	Paid     bool
}

// Update siempre agrega exactamente una entrada al change log, aunque no haya cambios.
// Last writer wins.
func (s *Service) Update(ctx context.Context, carNumber, date string, in UpdateInput, initials string) (Registration, error) {
	reg, err := s.update(ctx, carNumber, date, in, initials)
	s.record("update", err)
	return reg, err
}

func (s *Service) update(ctx context.Context, carNumber, date string, in UpdateInput, initials string) (Registration, error) {
	initials = strings.TrimSpace(initials)
	if initials == "" {
		return Registration{}, ErrInitialsRequired
	}
	if in.NumDogs < 0 || in.NumCats < 0 || in.Donation < 0 {
		return Registration{}, fmt.Errorf("%w: negative amounts", ErrInvalidInput)
	}
	if err := CheckStoredEntries(in.Items); err != nil {
		return Registration{}, err
	}

	prev, err := s.Get(ctx, carNumber, date)
	if err != nil {
		return Registration{}, err
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return Registration{}, fmt.Errorf("load catalog: %w", err)
	}

	next := prev
	if c := strings.TrimSpace(in.CarNumber); c != "" {
		next.CarNumber = c
	}
	next.NumDogs = in.NumDogs
	next.NumCats = in.NumCats
	next.Items = Reprice(cat, in.Items)
	next.Credit = in.Credit
	next.Cash = in.Cash
	next.Donation = roundCents(in.Donation)
	next.Total = TotalWithDonation(next.Items, in.Donation)
	next.Comments = strings.TrimSpace(in.Comments)
	next.Tags = normalizeTags(in.Tags)
	next.Paid = in.Paid

	now := s.now()
	changes := Diff(prev.Snapshot(), next.Snapshot())
	next.ChangeLog = AppendChange(prev.ChangeLog, ChangeLogEntry{
		Action:            FieldsAction(changes),
		Timestamp:         now,
		VolunteerInitials: initials,
	})
	next.UpdatedAt = now

	if err := s.repo.Update(ctx, next); err != nil {
		return Registration{}, err
	}

	s.publish(ctx, realtime.EventUpdate, next)
	s.log.Info("registration updated", map[string]any{
		"car_number": next.CarNumber,
		"date":       next.Date,
		"changed":    len(changes),
	})
	return next, nil
}

// History devuelve el change log en orden de inserción.
func (s *Service) History(ctx context.Context, carNumber, date string) ([]ChangeLogEntry, error) {
	reg, err := s.Get(ctx, carNumber, date)
	if err != nil {
		return nil, err
	}
	return reg.ChangeLog, nil
}

func (s *Service) validateHeader(car, date, initials string) (string, string, string, error) {
	car = strings.TrimSpace(car)
	if car == "" {
		return "", "", "", fmt.Errorf("%w: car number required", ErrInvalidInput)
	}
	initials = strings.TrimSpace(initials)
	if initials == "" {
		return "", "", "", ErrInitialsRequired
	}
	date, err := s.resolveDate(date)
	if err != nil {
		return "", "", "", err
	}
	return car, date, initials, nil
}

func (s *Service) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return date, nil
}

// publish no devuelve error: la escritura ya quedó hecha.
func (s *Service) publish(ctx context.Context, ev realtime.EventType, reg Registration) {
	if s.pub == nil {
		return
	}
	row, err := json.Marshal(reg)
	if err != nil {
		s.log.Error("realtime encode failed", map[string]any{"error": err, "car_number": reg.CarNumber})
		return
	}
	if err := s.pub.Publish(ctx, realtime.Notification{EventType: ev, Table: Table, New: row}); err != nil {
		s.log.Warn("realtime publish failed", map[string]any{"error": err, "event": string(ev), "car_number": reg.CarNumber})
	}
}

func (s *Service) record(op string, err error) {
	if s.rec == nil {
		return
	}
	s.rec.RegistrationWrite(op, resultOf(err))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}

// IsValidation agrupa los errores de input del usuario.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrInitialsRequired) ||
		errors.Is(err, ErrPaymentMethodRequired) ||
		errors.Is(err, ErrEmptyPayment)
}

// Catalog expone el catálogo para el builder de líneas (POST /ledger).
func (s *Service) Catalog(ctx context.Context) (items.Catalog, error) {
	return s.catalog.Catalog(ctx)
}
