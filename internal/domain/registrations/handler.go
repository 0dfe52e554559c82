package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"clinic-frontdesk/internal/middleware"
	"clinic-frontdesk/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// MsgDuplicate es el texto que ve el voluntario cuando el auto ya está registrado hoy.
const MsgDuplicate = "Car number for today already exists. Please use a different car number or look it up to update it."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errores con el nombre json del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, notify.Alert) {}

func RegisterRoutes(r chi.Router, svc *Service, notifier notify.Notifier) {
	if notifier == nil {
		notifier = nopNotifier{}
	}

	r.Route("/registrations", func(rr chi.Router) {
		rr.Post("/", createRegistrationHandler(svc, notifier))
		rr.Get("/", listRegistrationsHandler(svc, notifier))

		rr.Get("/{carNumber}", getRegistrationHandler(svc, notifier))
		rr.Put("/{carNumber}", updateRegistrationHandler(svc, notifier))
		rr.Get("/{carNumber}/history", historyHandler(svc, notifier))
	})

	// Formulario de pago rápido
	r.Post("/payments", recordPaymentHandler(svc, notifier))

	// Builder de líneas sin estado (el formulario en curso vive en la UI)
	r.Post("/ledger", ledgerHandler(svc, notifier))
}

type selectionRequest struct {
	Name     string   `json:"name" validate:"required"`
	Quantity int      `json:"quantity" validate:"min=0"`
	Waived   bool     `json:"waived"`
	Refunded bool     `json:"refunded"`
	Tags     []string `json:"tags"`
}

type createRegistrationRequest struct {
	CarNumber string `json:"car_number" validate:"required,max=32"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`

	NumDogs int `json:"num_dogs" validate:"min=0,max=20"`
	NumCats int `json:"num_cats" validate:"min=0,max=20"`

	Items []selectionRequest `json:"items" validate:"dive"`

	Credit   bool    `json:"credit"`
	Cash     bool    `json:"cash"`
	Donation float64 `json:"donation" validate:"min=0"`

	Comments string   `json:"comments" validate:"max=2000"`
	Tags     []string `json:"tags"`
	Paid     bool     `json:"paid"`

	VolunteerInitials string `json:"volunteer_initials" validate:"max=8"`
}

type updateRegistrationRequest struct {
	CarNumber string `json:"car_number" validate:"max=32"`

	NumDogs int `json:"num_dogs" validate:"min=0,max=20"`
	NumCats int `json:"num_cats" validate:"min=0,max=20"`

	// Líneas ya guardadas: la cantidad viaja con su signo.
	Items []LineEntry `json:"items"`

	Credit   bool    `json:"credit"`
	Cash     bool    `json:"cash"`
	Donation float64 `json:"donation" validate:"min=0"`

	Comments string   `json:"comments" validate:"max=2000"`
	Tags     []string `json:"tags"`
	Paid     bool     `json:"paid"`

	VolunteerInitials string `json:"volunteer_initials" validate:"max=8"`
}

type paymentRequest struct {
	CarNumber string `json:"car_number" validate:"required,max=32"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`

	NumDogs int `json:"num_dogs" validate:"min=0,max=20"`
	NumCats int `json:"num_cats" validate:"min=0,max=20"`

	// MappingKey -> cantidad
	Items    map[string]int `json:"items"`
	Donation float64        `json:"donation" validate:"min=0"`

	Credit bool `json:"credit"`
	Cash   bool `json:"cash"`
	Waived bool `json:"waived"`

	VolunteerInitials string `json:"volunteer_initials" validate:"max=8"`
}

type ledgerRequest struct {
	Entries   []LineEntry       `json:"entries"`
	Selection *selectionRequest `json:"selection"`
	Remove    string            `json:"remove"`
	Donation  float64           `json:"donation" validate:"min=0"`
}

type ledgerResponse struct {
	Entries []LineEntry `json:"entries"`
	Total   float64     `json:"total"`
}

type registrationResponse struct {
	ID        string `json:"id"`
	CarNumber string `json:"car_number"`
	Date      string `json:"date"`

	NumDogs int `json:"num_dogs"`
	NumCats int `json:"num_cats"`

	Items []LineEntry `json:"items"`

	Credit   bool    `json:"credit"`
	Cash     bool    `json:"cash"`
	Donation float64 `json:"donation"`
	Total    float64 `json:"total"`

	Comments string   `json:"comments"`
	Tags     []string `json:"tags"`
	Paid     bool     `json:"paid"`

	ChangeLog []ChangeLogEntry `json:"change_log"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listResponse struct {
	Date          string                 `json:"date"`
	Registrations []registrationResponse `json:"registrations"`
	Alert         *notify.Alert          `json:"alert,omitempty"`
}

type historyEntryResponse struct {
	Summary           string       `json:"summary"`
	Action            ChangeAction `json:"action"`
	Timestamp         time.Time    `json:"timestamp"`
	VolunteerInitials string       `json:"volunteer_initials"`
}

// createRegistrationHandler godoc
// @Summary Registrar un auto
// @Description Crea la registración del día (car_number único por fecha). Requiere iniciales del voluntario.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body createRegistrationRequest true "registración"
// @Success 201 {object} registrationResponse
// @Failure 400 {object} notify.Alert
// @Failure 409 {object} notify.Alert
// @Router /registrations [post]
func createRegistrationHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRegistrationRequest
		if !decodeAndValidate(w, r, notifier, &req) {
			return
		}

		sels := make([]Selection, 0, len(req.Items))
		for _, it := range req.Items {
			sels = append(sels, Selection(it))
		}

		reg, err := svc.Create(r.Context(), CreateInput{
			CarNumber:         req.CarNumber,
			Date:              req.Date,
			NumDogs:           req.NumDogs,
			NumCats:           req.NumCats,
			Selections:        sels,
			Credit:            req.Credit,
			Cash:              req.Cash,
			Donation:          req.Donation,
			Comments:          req.Comments,
			Tags:              req.Tags,
			Paid:              req.Paid,
			VolunteerInitials: middleware.Initials(r.Context(), req.VolunteerInitials),
		})
		if err != nil {
			writeError(w, r, notifier, err, "Failed to create registration")
			return
		}

		notifier.Notify(r.Context(), notify.Alert{
			Severity: notify.SeveritySuccess,
			Title:    "Registration created",
			Message:  fmt.Sprintf("Car %s registered", reg.CarNumber),
		})
		writeJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

// listRegistrationsHandler godoc
// @Summary Listar registraciones del día
// @Description Orden natural por car_number. Si falla la lectura responde 200 con lista vacía y alert.
// @Tags registrations
// @Produce json
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} listResponse
// @Failure 400 {object} notify.Alert
// @Router /registrations [get]
func listRegistrationsHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			date = svc.Today()
		}
		regs, err := svc.ListByDate(r.Context(), date)
		if err != nil {
			if IsValidation(err) {
				writeError(w, r, notifier, err, "Failed to fetch registrations")
				return
			}
			// La página cae a una lista vacía.
			a := notify.Alert{
				Severity: notify.SeverityError,
				Title:    "Error",
				Message:  "Failed to fetch registrations: " + err.Error(),
			}
			notifier.Notify(r.Context(), a)
			writeJSON(w, http.StatusOK, listResponse{Date: date, Registrations: []registrationResponse{}, Alert: &a})
			return
		}

		out := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			out = append(out, toRegistrationResponse(reg))
		}
		writeJSON(w, http.StatusOK, listResponse{Date: date, Registrations: out})
	}
}

// getRegistrationHandler godoc
// @Summary Buscar un auto
// @Tags registrations
// @Produce json
// @Param carNumber path string true "car number"
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {object} registrationResponse
// @Failure 404 {object} notify.Alert
// @Router /registrations/{carNumber} [get]
func getRegistrationHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, err := svc.Get(r.Context(), chi.URLParam(r, "carNumber"), r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, r, notifier, err, "Failed to fetch registration")
			return
		}
		writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

// updateRegistrationHandler godoc
// @Summary Editar una registración
// @Description Reemplaza los campos editables, recalcula el total y agrega una entrada al change log.
// @Tags registrations
// @Accept json
// @Produce json
// @Param carNumber path string true "car number"
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Param body body updateRegistrationRequest true "registración"
// @Success 200 {object} registrationResponse
// @Failure 400 {object} notify.Alert
// @Failure 404 {object} notify.Alert
// @Failure 409 {object} notify.Alert
// @Router /registrations/{carNumber} [put]
func updateRegistrationHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRegistrationRequest
		if !decodeAndValidate(w, r, notifier, &req) {
			return
		}

		reg, err := svc.Update(r.Context(),
			chi.URLParam(r, "carNumber"),
			r.URL.Query().Get("date"),
			UpdateInput{
				CarNumber: req.CarNumber,
				NumDogs:   req.NumDogs,
				NumCats:   req.NumCats,
				Items:     req.Items,
				Credit:    req.Credit,
				Cash:      req.Cash,
				Donation:  req.Donation,
				Comments:  req.Comments,
				Tags:      req.Tags,
				Paid:      req.Paid,
			},
			middleware.Initials(r.Context(), req.VolunteerInitials),
		)
		if err != nil {
			writeError(w, r, notifier, err, "Failed to update registration")
			return
		}

		notifier.Notify(r.Context(), notify.Alert{
			Severity: notify.SeveritySuccess,
			Title:    "Registration updated",
			Message:  fmt.Sprintf("Car %s updated", reg.CarNumber),
		})
		writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

// historyHandler godoc
// @Summary Historial de cambios
// @Tags registrations
// @Produce json
// @Param carNumber path string true "car number"
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {array} historyEntryResponse
// @Failure 404 {object} notify.Alert
// @Router /registrations/{carNumber}/history [get]
func historyHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, err := svc.History(r.Context(), chi.URLParam(r, "carNumber"), r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, r, notifier, err, "Failed to fetch history")
			return
		}

		out := make([]historyEntryResponse, 0, len(log))
		for _, e := range log {
			out = append(out, historyEntryResponse{
				Summary:           Summarize(e),
				Action:            e.Action,
				Timestamp:         e.Timestamp,
				VolunteerInitials: e.VolunteerInitials,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recordPaymentHandler godoc
// @Summary Registrar un pago
// @Description Conteos por mapping key + donación. Requiere credit o cash y total > 0.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body paymentRequest true "pago"
// @Success 201 {object} registrationResponse
// @Failure 400 {object} notify.Alert
// @Failure 409 {object} notify.Alert
// @Router /payments [post]
func recordPaymentHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentRequest
		if !decodeAndValidate(w, r, notifier, &req) {
			return
		}

		reg, err := svc.RecordPayment(r.Context(), PaymentInput{
			CarNumber:         req.CarNumber,
			Date:              req.Date,
			NumDogs:           req.NumDogs,
			NumCats:           req.NumCats,
			Counts:            ItemCounts(req.Items),
			Donation:          req.Donation,
			Credit:            req.Credit,
			Cash:              req.Cash,
			Waived:            req.Waived,
			VolunteerInitials: middleware.Initials(r.Context(), req.VolunteerInitials),
		})
		if err != nil {
			writeError(w, r, notifier, err, "Failed to record payment")
			return
		}

		notifier.Notify(r.Context(), notify.Alert{
			Severity: notify.SeveritySuccess,
			Title:    "Payment recorded",
			Message:  fmt.Sprintf("Car %s paid %.2f", reg.CarNumber, reg.Total),
		})
		writeJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

// ledgerHandler godoc
// @Summary Agregar/quitar una línea
// @Description Sin estado: recibe las líneas actuales y devuelve las nuevas con el total.
// @Tags ledger
// @Accept json
// @Produce json
// @Param body body ledgerRequest true "líneas + selección"
// @Success 200 {object} ledgerResponse
// @Failure 400 {object} notify.Alert
// @Router /ledger [post]
func ledgerHandler(svc *Service, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ledgerRequest
		if !decodeAndValidate(w, r, notifier, &req) {
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeError(w, r, notifier, err, "Failed to load items")
			return
		}

		if err := CheckStoredEntries(req.Entries); err != nil {
			writeError(w, r, notifier, err, "Invalid item")
			return
		}
		// Los subtotales que manda el cliente no se usan.
		entries := Reprice(cat, req.Entries)
		if name := strings.TrimSpace(req.Remove); name != "" {
			entries = RemoveLineEntry(entries, name)
		}
		if req.Selection != nil {
			e, err := BuildLineEntry(cat, Selection(*req.Selection))
			if err != nil {
				writeError(w, r, notifier, err, "Invalid item")
				return
			}
			entries = UpsertLineEntry(entries, e)
		}

		writeJSON(w, http.StatusOK, ledgerResponse{
			Entries: entries,
			Total:   TotalWithDonation(entries, req.Donation),
		})
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, notifier notify.Notifier, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAlert(w, r, notifier, http.StatusBadRequest, notify.Alert{
			Severity: notify.SeverityError, Title: "Error", Message: "invalid json",
		})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeAlert(w, r, notifier, http.StatusBadRequest, notify.Alert{
			Severity: notify.SeverityError, Title: "Error", Message: validationMessage(err),
		})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "datetime":
			parts = append(parts, fe.Field()+" must be YYYY-MM-DD")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

// writeError traduce errores del dominio a status + alert.
func writeError(w http.ResponseWriter, r *http.Request, notifier notify.Notifier, err error, failure string) {
	switch {
	case errors.Is(err, ErrDuplicate):
		writeAlert(w, r, notifier, http.StatusConflict, notify.Alert{
			Severity: notify.SeverityError, Title: "Error", Message: MsgDuplicate,
		})
	case errors.Is(err, ErrNotFound):
		// Estado normal de búsqueda, no un error.
		writeAlert(w, r, notifier, http.StatusNotFound, notify.Alert{
			Severity: notify.SeverityWarning, Title: "Car not found", Message: "No registration found for that car number",
		})
	case IsValidation(err):
		writeAlert(w, r, notifier, http.StatusBadRequest, notify.Alert{
			Severity: notify.SeverityError, Title: "Error", Message: err.Error(),
		})
	default:
		writeAlert(w, r, notifier, http.StatusInternalServerError, notify.Alert{
			Severity: notify.SeverityError, Title: "Error", Message: failure + ": " + err.Error(),
		})
	}
}

func writeAlert(w http.ResponseWriter, r *http.Request, notifier notify.Notifier, status int, a notify.Alert) {
	notifier.Notify(r.Context(), a)
	writeJSON(w, status, a)
}

func toRegistrationResponse(r Registration) registrationResponse {
	items := r.Items
	if items == nil {
		items = []LineEntry{}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	log := r.ChangeLog
	if log == nil {
		log = []ChangeLogEntry{}
	}
	return registrationResponse{
		ID:        r.ID,
		CarNumber: r.CarNumber,
		Date:      r.Date,
		NumDogs:   r.NumDogs,
		NumCats:   r.NumCats,
		Items:     items,
		Credit:    r.Credit,
		Cash:      r.Cash,
		Donation:  r.Donation,
		Total:     r.Total,
		Comments:  r.Comments,
		Tags:      tags,
		Paid:      r.Paid,
		ChangeLog: log,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
