package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	Action   string
	Entity   string
	EntityID string
	Metadata any
	At       time.Time
}

// Sink stores or forwards one audit event.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event
	log   *zap.Logger

	wg   sync.WaitGroup
	once sync.Once
}

const queueSize = 100

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, queueSize), // buffer seguro
		log:   log,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					zap.String("action", ev.Action),
					zap.String("entity_id", ev.EntityID),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks the request path. A nil dispatcher discards events.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker. Dispatch must not be
// called after Close.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
