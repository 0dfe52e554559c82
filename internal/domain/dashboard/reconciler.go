package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic-frontdesk/internal/domain/registrations"
	"clinic-frontdesk/internal/platform/logger"
	"clinic-frontdesk/internal/ports/realtime"
)

type State string

const (
	StateUnsubscribed State = "unsubscribed"
	StateSubscribed   State = "subscribed"
)

var ErrNotSubscribed = errors.New("reconciler: not subscribed")

// Recorder cuenta notificaciones por evento y resultado.
type Recorder interface {
	RealtimeNotification(event, outcome string)
}

type ReconcilerOptions struct {
	Logger   logger.Logger
	Recorder Recorder

	// OnApplied se llama desde el loop después de cada notificación aplicada.
	OnApplied func(Summary)

	// Source habilita el cambio de día: cuando Today() ya no es la fecha de la
	// Session, el loop la recarga desde el storage. Nil = la Session no cambia de día.
	Source Lister
	// RolloverEvery es cada cuánto se revisa el día sin tráfico. Default: 1 minuto.
	RolloverEvery time.Duration
}

// Reconciler mantiene la Session al día con los cambios de la tabla registrations.
// Estados: unsubscribed -> Subscribe -> subscribed -> Close/fin de ctx -> unsubscribed.
// No reintenta ni reconecta.
type Reconciler struct {
	sub     realtime.Subscriber
	session *Session
	log     logger.Logger
	rec     Recorder
	onApply func(Summary)
	source  Lister
	every   time.Duration

	mu    sync.Mutex
	state State
	subn  realtime.Subscription
}

func NewReconciler(sub realtime.Subscriber, session *Session, opts ReconcilerOptions) *Reconciler {
	r := &Reconciler{
		sub:     sub,
		session: session,
		log:     opts.Logger,
		rec:     opts.Recorder,
		onApply: opts.OnApplied,
		source:  opts.Source,
		every:   opts.RolloverEvery,
		state:   StateUnsubscribed,
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	if r.every <= 0 {
		r.every = time.Minute
	}
	return r
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe abre la suscripción a todos los eventos de la tabla. Idempotente.
func (r *Reconciler) Subscribe(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateSubscribed {
		return nil
	}

	s, err := r.sub.Subscribe(ctx, registrations.Table, realtime.EventAll)
	if err != nil {
		return err
	}
	r.subn = s
	r.state = StateSubscribed
	r.log.Info("realtime subscribed", map[string]any{"table": registrations.Table})
	return nil
}

// Run es el único loop que aplica notificaciones, en orden de llegada.
// Termina cuando se cancela ctx (y cierra la suscripción) o cuando el canal se cierra.
func (r *Reconciler) Run(ctx context.Context) error {
	r.mu.Lock()
	s := r.subn
	r.mu.Unlock()
	if s == nil {
		return ErrNotSubscribed
	}

	var tick <-chan time.Time
	if r.source != nil {
		t := time.NewTicker(r.every)
		defer t.Stop()
		tick = t.C
	}

	ch := s.C()
	for {
		select {
		case <-ctx.Done():
			_ = r.Close()
			return ctx.Err()
		case <-tick:
			r.rollover(ctx)
		case n, ok := <-ch:
			if !ok {
				r.markClosed(s)
				r.log.Warn("realtime subscription ended", map[string]any{"table": registrations.Table})
				return nil
			}
			r.rollover(ctx)
			r.handle(n)
		}
	}
}

// rollover recarga la Session cuando cambió el día de la clínica.
// Si la lectura falla la Session queda como está y se reintenta en el próximo tick.
func (r *Reconciler) rollover(ctx context.Context) {
	if r.source == nil {
		return
	}
	today := r.source.Today()
	if today == r.session.Date() {
		return
	}

	regs, err := r.source.ListByDate(ctx, today)
	if err != nil {
		r.log.Warn("dashboard day rollover failed", map[string]any{"date": today, "error": err})
		return
	}
	r.session.Reset(today, regs)
	r.log.Info("dashboard day rolled over", map[string]any{"date": today, "registrations": len(regs)})
}

func (r *Reconciler) handle(n realtime.Notification) {
	outcome, err := r.session.Apply(n)
	if r.rec != nil {
		r.rec.RealtimeNotification(string(n.EventType), string(outcome))
	}

	fields := map[string]any{"event": string(n.EventType), "outcome": string(outcome)}
	if err != nil {
		fields["error"] = err
		r.log.Warn("realtime notification not applied", fields)
		return
	}
	r.log.Debug("realtime notification", fields)

	if outcome == OutcomeApplied && r.onApply != nil {
		r.onApply(r.session.Summary())
	}
}

// Close deja el estado en unsubscribed. Idempotente.
func (r *Reconciler) Close() error {
	r.mu.Lock()
	s := r.subn
	r.subn = nil
	r.state = StateUnsubscribed
	r.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.Close()
}

func (r *Reconciler) markClosed(s realtime.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subn == s {
		r.subn = nil
		r.state = StateUnsubscribed
	}
}
