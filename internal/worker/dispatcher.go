package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of best-effort background work.
type Task func(ctx context.Context) error

type job struct {
	name string
	task Task
}

// Dispatcher runs best-effort tasks on a bounded worker pool.
//
// Submitted tasks have no ordering guarantee. Their errors and panics are
// logged and never reported back to the submitter.
type Dispatcher struct {
	workers int
	timeout time.Duration
	logger  *slog.Logger

	jobs    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	closed  bool
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewDispatcher constructs dispatcher with the given pool and queue sizes.
func NewDispatcher(workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		workers: workers,
		timeout: timeout,
		logger:  logger,
		jobs:    make(chan job, queueSize),
		baseCtx: context.Background(),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	// Tasks outlive the request and the start hook; only Stop cancels them.
	d.baseCtx, d.cancel = context.WithCancel(context.WithoutCancel(ctx))

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Submit enqueues task without blocking. When the queue is full the task runs
// on its own goroutine.
func (d *Dispatcher) Submit(name string, task Task) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("background task dropped after shutdown", slog.String("task", name))
		return
	}

	j := job{name: name, task: task}
	if d.started {
		select {
		case d.jobs <- j:
			return
		default:
			d.logger.Warn("background queue full, running task detached", slog.String("task", name))
		}
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(j)
	}()
}

// Stop drains queued tasks and waits for in-flight ones.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

func (d *Dispatcher) base() context.Context {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.baseCtx
}

func (d *Dispatcher) run(j job) {
	ctx, cancel := context.WithTimeout(d.base(), d.timeout)
	defer cancel()

	start := time.Now()
	err := safeCall(ctx, j.task)
	if err != nil {
		d.logger.Error("background task failed",
			slog.String("task", j.name),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return
	}
	d.logger.Debug("background task finished", slog.String("task", j.name), slog.Duration("elapsed", time.Since(start)))
}

func safeCall(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}
