package billing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type recordingProcessor struct {
	mu      sync.Mutex
	seen    []string
	started chan struct{}
	release chan struct{}
}

func (p *recordingProcessor) ProcessEvent(_ context.Context, event *stripe.Event) error {
	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, event.ID)
	return nil
}

func (p *recordingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.seen)
}

func TestWorkerPoolDrainsOnShutdown(t *testing.T) {
	processor := &recordingProcessor{}
	pool := NewWorkerPool(WorkerPoolConfig{MinWorkers: 2, MaxWorkers: 4, QueueSize: 100}, processor, zap.NewNop())

	for i := 0; i < 50; i++ {
		require.NoError(t, pool.Submit(context.Background(), &stripe.Event{ID: fmt.Sprintf("evt_%d", i)}))
	}
	pool.Shutdown()

	assert.Equal(t, 50, processor.count())
}

func TestWorkerPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{}, &recordingProcessor{}, zap.NewNop())
	pool.Shutdown()
	pool.Shutdown()

	err := pool.Submit(context.Background(), &stripe.Event{ID: "evt_late"})
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
}

func TestWorkerPoolSubmitHonoursContext(t *testing.T) {
	processor := &recordingProcessor{
		started: make(chan struct{}, 3),
		release: make(chan struct{}),
	}
	pool := NewWorkerPool(WorkerPoolConfig{MinWorkers: 1, MaxWorkers: 1, QueueSize: 1}, processor, zap.NewNop())

	require.NoError(t, pool.Submit(context.Background(), &stripe.Event{ID: "evt_1"}))
	<-processor.started
	require.NoError(t, pool.Submit(context.Background(), &stripe.Event{ID: "evt_2"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, &stripe.Event{ID: "evt_3"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(processor.release)
	pool.Shutdown()
	assert.Equal(t, 2, processor.count())
}

func TestWorkerSkipsCanceledJob(t *testing.T) {
	processor := &recordingProcessor{}
	pool := NewWorkerPool(WorkerPoolConfig{MinWorkers: 1, MaxWorkers: 1, QueueSize: 1}, processor, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool.jobQueue <- WorkRequest{Event: &stripe.Event{ID: "evt_canceled"}, Ctx: ctx}
	pool.Shutdown()

	assert.Zero(t, processor.count())
}

func TestDispatcherScalesWithQueueDepth(t *testing.T) {
	processor := &recordingProcessor{release: make(chan struct{})}
	jobQueue := make(chan WorkRequest, 10)
	dispatcher := NewDispatcher(jobQueue, 1, 3, processor, zap.NewNop())
	dispatcher.Run()

	for i := 0; i < 5; i++ {
		jobQueue <- WorkRequest{Event: &stripe.Event{ID: fmt.Sprintf("evt_%d", i)}, Ctx: context.Background()}
	}

	dispatcher.adjustWorkerPool()
	dispatcher.adjustWorkerPool()
	dispatcher.adjustWorkerPool()
	assert.Equal(t, 3, dispatcher.WorkerCount())

	close(processor.release)
	assert.Eventually(t, func() bool { return processor.count() == 5 }, time.Second, 5*time.Millisecond)

	dispatcher.adjustWorkerPool()
	dispatcher.adjustWorkerPool()
	dispatcher.adjustWorkerPool()
	assert.Equal(t, 1, dispatcher.WorkerCount())

	close(jobQueue)
	dispatcher.Stop()
}

func TestTickerInterval(t *testing.T) {
	assert.Equal(t, minTickerInterval, tickerInterval(51))
	assert.Equal(t, defaultTickerInterval, tickerInterval(21))
	assert.Equal(t, maxTickerInterval, tickerInterval(0))
}
