package notifylog

import (
	"context"

	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/ports/notify"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Notifier deja rastro en el log de cada alerta que se le muestra al voluntario.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) Notify(ctx context.Context, a notify.Alert) {
	fields := map[string]any{
		"severity":   string(a.Severity),
		"title":      a.Title,
		"message":    a.Message,
		"request_id": chimw.GetReqID(ctx),
	}
	switch a.Severity {
	case notify.SeverityError:
		n.log.Warn("alert", fields)
	default:
		n.log.Debug("alert", fields)
	}
}
