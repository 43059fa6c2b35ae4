package billing

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type EventProcessor interface {
	ProcessEvent(ctx context.Context, event *stripe.Event) error
}

type WorkRequest struct {
	Event *stripe.Event
	Ctx   context.Context
}

// Worker pulls jobs from the shared queue until it is stopped or the queue is closed and empty.
type Worker struct {
	ID        int
	jobs      <-chan WorkRequest
	quit      chan struct{}
	processor EventProcessor
	logger    *zap.Logger
}

func NewWorker(id int, jobs <-chan WorkRequest, processor EventProcessor, logger *zap.Logger) *Worker {
	return &Worker{
		ID:        id,
		jobs:      jobs,
		quit:      make(chan struct{}),
		processor: processor,
		logger:    logger,
	}
}

func (w *Worker) Start(wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		for {
			select {
			case <-w.quit:
				return
			case job, ok := <-w.jobs:
				if !ok {
					return
				}
				w.process(job)
			}
		}
	}()
}

func (w *Worker) process(job WorkRequest) {
	fields := []zap.Field{
		zap.Int("worker_id", w.ID),
		zap.String("event_type", string(job.Event.Type)),
		zap.String("event_id", job.Event.ID),
	}

	if err := job.Ctx.Err(); err != nil {
		w.logger.Warn("Job context canceled before processing", append(fields, zap.Error(err))...)
		return
	}

	w.logger.Debug("Processing event", fields...)
	if err := w.processor.ProcessEvent(job.Ctx, job.Event); err != nil {
		w.logger.Error("Failed to process event", append(fields, zap.Error(err))...)
		return
	}
	w.logger.Debug("Event processed", fields...)
}

func (w *Worker) Stop() {
	close(w.quit)
}
