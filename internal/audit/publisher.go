package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink is an optional fan-out target beyond the store (Kafka in production).
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. Emit never blocks the request
// path on the sink: events are appended to the store synchronously and handed
// to the worker for fan-out.
type Publisher struct {
	store  Store
	worker *Worker
}

func NewPublisher(store Store, worker *Worker) *Publisher {
	return &Publisher{store: store, worker: worker}
}

// Emit records an event. A zero timestamp is stamped here so call sites stay
// terse.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.worker != nil {
		p.worker.Enqueue(event)
	}
	return nil
}

// List returns a submission's audit trail.
func (p *Publisher) List(ctx context.Context, submissionID string) ([]Event, error) {
	return p.store.ListBySubmission(ctx, submissionID)
}

// Worker drains enqueued events to the sink off the request path. A full
// buffer drops the event with a log line rather than stalling a check-in.
type Worker struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Event
}

func NewWorker(sink Sink, logger *slog.Logger) *Worker {
	return &Worker{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 256),
	}
}

// Enqueue hands an event to the worker.
func (w *Worker) Enqueue(event Event) {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full, dropping event",
			"action", event.Action,
			"submission_id", event.SubmissionID,
		)
	}
}

// Run drains the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.queue:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.Error("audit publish failed",
					"error", err,
					"action", event.Action,
				)
			}
		}
	}
}
