package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/metrics"
)

// Dispatcher delivers each event to a fixed list of subscribers, every one on
// its own goroutine with a context detached from the request.
type Dispatcher struct {
	subscribers []Subscriber
	timeout     time.Duration
	wg          sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, subscribers ...Subscriber) *Dispatcher {
	return &Dispatcher{subscribers: subscribers, timeout: timeout}
}

func (d *Dispatcher) PublishOrderCreated(ctx context.Context, event OrderCreated) {

	logger := middleware.LoggerFromContext(ctx)

	// keeps request values (logger, trace) but outlives the request
	base := context.WithoutCancel(ctx)

	for _, subscriber := range d.subscribers {
		d.wg.Add(1)

		go d.deliver(base, logger, subscriber, event)
	}
}

func (d *Dispatcher) deliver(base context.Context, logger *slog.Logger, subscriber Subscriber, event OrderCreated) {

	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	logger = logger.With(slog.String("subscriber", subscriber.Name()), slog.String("event", OrderCreatedEvent))

	var err error

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}

		metrics.ObserveEventDelivery(OrderCreatedEvent, subscriber.Name(), err)

		if err != nil {
			logger.Error("Event delivery failed", slog.String("error", err.Error()))
			return
		}

		logger.Info("Event delivered")
	}()

	err = subscriber.HandleOrderCreated(ctx, event)
}

// Wait blocks until every in-flight delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
