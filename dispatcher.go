package billing

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	minTickerInterval     = 5 * time.Second
	defaultTickerInterval = 10 * time.Second
	maxTickerInterval     = 30 * time.Second
)

// Dispatcher keeps between minWorkers and maxWorkers workers consuming the job queue,
// resizing on a ticker according to the queue depth.
type Dispatcher struct {
	jobQueue   chan WorkRequest
	minWorkers int
	maxWorkers int
	processor  EventProcessor
	logger     *zap.Logger

	mu       sync.Mutex
	workers  []*Worker
	nextID   int
	wg       sync.WaitGroup
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewDispatcher(jobQueue chan WorkRequest, minWorkers, maxWorkers int, processor EventProcessor, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		jobQueue:   jobQueue,
		minWorkers: minWorkers,
		maxWorkers: maxWorkers,
		processor:  processor,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (d *Dispatcher) Run() {
	d.mu.Lock()
	for i := 0; i < d.minWorkers; i++ {
		d.addWorker()
	}
	d.mu.Unlock()

	go d.dispatch()
}

// addWorker must be called with d.mu held.
func (d *Dispatcher) addWorker() *Worker {
	d.nextID++
	worker := NewWorker(d.nextID, d.jobQueue, d.processor, d.logger)
	d.wg.Add(1)
	worker.Start(&d.wg)
	d.workers = append(d.workers, worker)
	return worker
}

func (d *Dispatcher) dispatch() {
	defer close(d.done)

	interval := defaultTickerInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			next := tickerInterval(d.adjustWorkerPool())
			if next != interval {
				interval = next
				ticker.Reset(interval)
			}
		case <-d.stop:
			return
		}
	}
}

func tickerInterval(queued int) time.Duration {
	switch {
	case queued > 50:
		return minTickerInterval
	case queued > 20:
		return defaultTickerInterval
	default:
		return maxTickerInterval
	}
}

// adjustWorkerPool adds one worker while the backlog exceeds the worker count and
// removes one once the queue is empty, staying within the configured bounds.
// It returns the queue depth it observed.
func (d *Dispatcher) adjustWorkerPool() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	queued := len(d.jobQueue)
	count := len(d.workers)

	switch {
	case queued > count && count < d.maxWorkers:
		worker := d.addWorker()
		d.logger.Info("Added new worker", zap.Int("worker_id", worker.ID), zap.Int("queued", queued))
	case queued == 0 && count > d.minWorkers:
		worker := d.workers[count-1]
		worker.Stop()
		d.workers = d.workers[:count-1]
		d.logger.Info("Removed worker", zap.Int("worker_id", worker.ID))
	}

	return queued
}

func (d *Dispatcher) WorkerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.workers)
}

// Stop halts scaling and waits for every worker to exit. The job queue must be
// closed first so that workers drain what is left in it.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	<-d.done
	d.wg.Wait()
}
