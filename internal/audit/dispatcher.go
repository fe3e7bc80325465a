package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentUpdated   = "appointment_updated"
	ActionStatusChanged        = "appointment_status_changed"
	ActionPaymentStatusChanged = "appointment_payment_status_changed"
	ActionRescheduled          = "appointment_rescheduled"
	ActionRestored             = "appointment_restored"
	ActionDeleted              = "appointment_deleted"
	ActionCapacityRejected     = "capacity_rejected"
	ActionPaymentRecorded      = "payment_recorded"
	ActionPaymentMethodChanged = "payment_method_changed"
	ActionGatewayCallback      = "gateway_callback_applied"
	ActionTimeSlotCreated      = "time_slot_created"
	ActionTimeSlotUpdated      = "time_slot_updated"
	ActionTimeSlotDeleted      = "time_slot_deleted"
)

type Event struct {
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Auditor is what use cases record events through.
type Auditor interface {
	Dispatch(ev Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.logger.Log(
			context.Background(),
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}
