package notify

import "context"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert es el mensaje que ve el voluntario (título + texto + severidad).
type Alert struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Notifier recibe las alertas emitidas por los handlers.
type Notifier interface {
	Notify(ctx context.Context, a Alert)
}
