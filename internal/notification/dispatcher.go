package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
)

const sendTimeout = 30 * time.Second

// Dispatcher sends notices from a background worker so that bookings
// and payments never wait on, or fail because of, the mail server.
type Dispatcher struct {
	sender  Sender
	log     zerolog.Logger
	metrics *metrics.Metrics
	queue   chan Notice
	wg      sync.WaitGroup
	once    sync.Once
}

func NewDispatcher(sender Sender, log zerolog.Logger, m *metrics.Metrics, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		metrics: m,
		queue:   make(chan Notice, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notice) {
	log := d.log.With().
		Str("kind", string(n.Kind)).
		Str("appointment", n.Appointment.Code).
		Logger()

	subject, body, err := Render(n)
	if err != nil {
		d.metrics.Notification("render_failed")
		log.Error().Err(err).Msg("notification render failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, n.To, subject, body); err != nil {
		d.metrics.Notification("failed")
		log.Error().Err(err).Msg("notification send failed")
		return
	}

	d.metrics.Notification("sent")
	log.Info().Msg("notification sent")
}

// Notify queues n; when the queue is full the notice is dropped.
func (d *Dispatcher) Notify(n Notice) {
	select {
	case d.queue <- n:
	default:
		d.metrics.Notification("dropped")
		d.log.Warn().Str("appointment", n.Appointment.Code).Msg("notification queue full, dropping notice")
	}
}

// Close stops the worker after the queued notices are delivered.
// Notify must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

var _ Notifier = (*Dispatcher)(nil)
