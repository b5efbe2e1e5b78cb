// Package worker defines worker contracts for asynchronous
// recommendation assembly.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/mentorpath/internal/adapters/mq/queue"
	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/pkg/logger"
	"github.com/okian/mentorpath/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Evaluator assembles one recommendation from a learner and a profile.
type Evaluator interface {
	Evaluate(ctx context.Context, learner model.LearnerContext, profile model.ReferenceProfile) model.Recommendation
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes scoring jobs and delivers results through the job's
// result channel.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing scoring jobs.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, evaluator Evaluator, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		evaluator: evaluator,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}
			w.processJob(ctx, job)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob evaluates a single profile and delivers the result. A
// panic in the evaluator is contained here so one bad profile cannot
// take the worker down.
func (w *InMemoryWorker) processJob(ctx context.Context, job queue.Job) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordWorkerError()
			w.logger.Error(ctx, "evaluation panicked",
				logger.String("profileID", job.Profile.ID),
				logger.Any("panic", r),
			)
			// Deliver a zero result so the collector never blocks.
			job.Result <- model.Recommendation{ProfileID: job.Profile.ID}
		}
	}()

	job.Result <- w.evaluator.Evaluate(ctx, job.Learner, job.Profile)
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker

	// Shutdown control
	shutdown chan struct{}

	queue Queue

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, evaluator Evaluator) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		shutdown: make(chan struct{}),
		queue:    q,
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			evaluator,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		close(worker.shutdown)
	}
	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown gracefully shuts down the entire worker pool, closing the
// queue first so no new jobs arrive.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)
	for _, worker := range p.workers {
		close(worker.shutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	return nil
}
