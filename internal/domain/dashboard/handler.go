package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/ports/notify"

	"github.com/go-chi/chi/v5"
)

// Lister es lo que el dashboard necesita del storage (registrations.Service lo cumple).
type Lister interface {
	Today() string
	ListByDate(ctx context.Context, date string) ([]registrations.Registration, error)
}

type summaryResponse struct {
	Source string          `json:"source"` // live | storage
	Date   string          `json:"date,omitempty"`
	Paid   AggregateCounts `json:"paid"`
	Unpaid AggregateCounts `json:"unpaid"`
	Alert  *notify.Alert   `json:"alert,omitempty"`
}

func RegisterRoutes(r chi.Router, session *Session, lister Lister, notifier notify.Notifier) {
	r.Get("/dashboard", summaryHandler(session, lister, notifier))
}

// summaryHandler godoc
// @Summary Totales pagados / pendientes
// @Description Sin date usa la sesión en vivo del día (realtime). Con date, o si la sesión quedó en otro día, lee del storage.
// @Tags dashboard
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} summaryResponse
// @Failure 400 {object} notify.Alert
// @Router /dashboard [get]
func summaryHandler(session *Session, lister Lister, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			today := lister.Today()
			if session.Date() == today {
				s := session.Summary()
				writeJSON(w, http.StatusOK, summaryResponse{Source: "live", Date: today, Paid: s.Paid, Unpaid: s.Unpaid})
				return
			}
			// La sesión todavía no pasó al día nuevo.
			date = today
		}

		regs, err := lister.ListByDate(r.Context(), date)
		if err != nil {
			a := notify.Alert{Severity: notify.SeverityError, Title: "Error", Message: "Failed to fetch registrations: " + err.Error()}
			if notifier != nil {
				notifier.Notify(r.Context(), a)
			}
			if registrations.IsValidation(err) {
				writeJSON(w, http.StatusBadRequest, a)
				return
			}
			writeJSON(w, http.StatusOK, summaryResponse{Source: "storage", Date: date, Alert: &a})
			return
		}

		s := Summarize(regs)
		writeJSON(w, http.StatusOK, summaryResponse{Source: "storage", Date: date, Paid: s.Paid, Unpaid: s.Unpaid})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
