package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/minimalpairs/internal/logger"
)

// ErrPoolClosed is returned when submitting to a pool that no longer accepts jobs.
var ErrPoolClosed = errors.New("worker pool closed")

type Job interface {
	Run(context.Context) error
	Name() string
}

type Pool struct {
	jobs      chan Job
	wg        sync.WaitGroup
	workers   int
	queue     int
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	log       *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		queue:   queueSize,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.ctx = ctx
	p.cancel = cancel
	p.log.Debug("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down (context cancelled)")
					return
				case job, ok := <-p.jobs:
					if !ok {
						workerLog.Debug("worker shutting down (queue drained)")
						return
					}

					jobLog := workerLog.WithField("job", job.Name())
					start := time.Now()
					jobCtx := logger.NewContext(ctx, jobLog)

					if err := job.Run(jobCtx); err != nil {
						jobLog.Warn("job failed after %v: %v", time.Since(start), err)
					} else {
						jobLog.Debug("job completed in %v", time.Since(start))
					}
				}
			}
		}(i + 1)
	}
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx == nil {
		return ErrPoolClosed
	}
	p.log.Debug("submitting job: %s", job.Name())
	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// Close stops accepting jobs and waits until every queued job has run.
func (p *Pool) Close() {
	p.shutdown()
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
}

// Stop cancels running jobs, discards queued ones and waits for the workers.
func (p *Pool) Stop() {
	p.log.Debug("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	p.shutdown()
	p.wg.Wait()
}

func (p *Pool) shutdown() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}
