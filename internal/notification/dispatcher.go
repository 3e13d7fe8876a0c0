package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher drains queued events into an Emitter on its own goroutine.
// Enqueue never blocks the caller: when the buffer is full the event is
// dropped and logged, since notifications are not safety-critical and
// must never hold up a state transition.
type Dispatcher struct {
	emitter Emitter
	log     *zap.Logger

	ch   chan Event
	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(emitter Emitter, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		emitter: emitter,
		log:     log,
		ch:      make(chan Event, 256),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) Enqueue(ev Event) {
	select {
	case d.ch <- ev:
	default:
		d.log.Warn("notification buffer full, event dropped",
			zap.String("kind", string(ev.Kind)),
			zap.Int("orderID", ev.OrderID))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.emitter.Emit(ctx, ev)
		if err != nil {
			// one retry, then drop; consumers tolerate missing events
			time.Sleep(200 * time.Millisecond)
			err = d.emitter.Emit(ctx, ev)
		}
		cancel()
		if err != nil {
			d.log.Warn("notification emit failed",
				zap.String("kind", string(ev.Kind)),
				zap.Int("orderID", ev.OrderID),
				zap.Error(err))
		}
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.ch)
	})
	d.wg.Wait()
}
