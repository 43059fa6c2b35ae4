package billing

import (
	"context"
	"errors"
	"sync"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

type WorkerPoolConfig struct {
	MinWorkers int
	MaxWorkers int
	QueueSize  int
}

type WorkerPool struct {
	jobQueue   chan WorkRequest
	dispatcher *Dispatcher
	logger     *zap.Logger

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(cfg WorkerPoolConfig, processor EventProcessor, logger *zap.Logger) *WorkerPool {
	if cfg.MinWorkers < 1 {
		cfg.MinWorkers = 1
	}
	if cfg.MaxWorkers < cfg.MinWorkers {
		cfg.MaxWorkers = cfg.MinWorkers
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}

	jobQueue := make(chan WorkRequest, cfg.QueueSize)
	dispatcher := NewDispatcher(jobQueue, cfg.MinWorkers, cfg.MaxWorkers, processor, logger)
	dispatcher.Run()

	return &WorkerPool{
		jobQueue:   jobQueue,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit queues an event, blocking while the queue is full until ctx is done.
func (wp *WorkerPool) Submit(ctx context.Context, event *stripe.Event) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case wp.jobQueue <- WorkRequest{Event: event, Ctx: ctx}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown rejects new submissions and returns once every queued job has been handled.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.jobQueue)
	wp.mu.Unlock()

	wp.dispatcher.Stop()
	wp.logger.Info("Worker pool shut down")
}
