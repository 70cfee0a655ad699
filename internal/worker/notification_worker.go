package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of background work.
type Job func(ctx context.Context) error

type namedJob struct {
	name string
	run  Job
}

// NotificationWorker runs notification deliveries off the request path.
type NotificationWorker struct {
	jobs    chan namedJob
	logger  *zap.Logger
	timeout time.Duration
	workers int

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotificationWorker builds a worker pool with a bounded queue.
func NewNotificationWorker(logger *zap.Logger, workers, queueSize int, timeout time.Duration) *NotificationWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &NotificationWorker{
		jobs:    make(chan namedJob, queueSize),
		logger:  logger,
		timeout: timeout,
		workers: workers,
	}
}

// Start launches the workers. They exit once Stop drains the queue.
func (w *NotificationWorker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for job := range w.jobs {
				w.run(ctx, job)
			}
		}()
	}
	w.logger.Info("notification worker started", zap.Int("workers", w.workers))
}

// Submit queues job without blocking. It reports false when the queue is
// full or the worker is stopped.
func (w *NotificationWorker) Submit(name string, job Job) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Warn("notification dropped; worker stopped", zap.String("job", name))
		return false
	}
	select {
	case w.jobs <- namedJob{name: name, run: job}:
		return true
	default:
		w.logger.Warn("notification dropped; queue full", zap.String("job", name))
		return false
	}
}

// Stop closes the queue and waits for queued jobs to finish.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *NotificationWorker) run(ctx context.Context, job namedJob) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("notification job panicked", zap.String("job", job.name), zap.Any("panic", r))
		}
	}()
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()
	if err := job.run(jobCtx); err != nil {
		w.logger.Warn("notification job failed", zap.String("job", job.name), zap.Error(err))
	}
}
