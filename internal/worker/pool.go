// Package worker runs the gateway's read-side fetch jobs on a fixed pool
// with a bounded queue. Jobs run exactly once: a failed fetch is reported,
// never retried, because a retry belongs to the user repeating the gesture.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bank-dashboard/internal/utils"
)

var (
	ErrQueueFull       = errors.New("worker queue full")
	ErrShutdownTimeout = errors.New("worker shutdown timed out")
)

// Job is one unit of work. OnDone, if set, is called with the task's result.
type Job struct {
	ID     string
	Task   func() error
	OnDone func(error)
}

type Pool struct {
	workers  int
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu    sync.Mutex
	stats Stats
}

type Stats struct {
	TotalJobs     int64
	CompletedJobs int64
	FailedJobs    int64
	ActiveWorkers int
	QueuedJobs    int
}

func NewPool(workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		stats:    Stats{ActiveWorkers: workers},
	}

	utils.LogInfo("WorkerPool", "pool created: %d workers, queue %d", workers, queueSize)
	return pool
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	utils.LogSuccess("WorkerPool", "all %d workers started", p.workers)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			utils.LogInfo("WorkerPool", "worker #%d stopping", id)
			return

		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.executeJob(id, job)
		}
	}
}

func (p *Pool) executeJob(workerID int, job Job) {
	startTime := time.Now()
	err := job.Task()

	p.mu.Lock()
	p.stats.TotalJobs++
	if err == nil {
		p.stats.CompletedJobs++
	} else {
		p.stats.FailedJobs++
	}
	p.mu.Unlock()

	if err != nil {
		utils.LogError("WorkerPool", fmt.Sprintf("worker #%d: job %s failed", workerID, job.ID), err)
	} else {
		utils.LogDebug("WorkerPool", "worker #%d: job %s done in %v", workerID, job.ID, time.Since(startTime))
	}

	if job.OnDone != nil {
		job.OnDone(err)
	}
}

// Submit enqueues a job without blocking; a full queue is the caller's
// problem to degrade around.
func (p *Pool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return context.Canceled

	case p.jobQueue <- job:
		return nil

	default:
		utils.LogWarning("WorkerPool", "queue full, job %s rejected", job.ID)
		return ErrQueueFull
	}
}

// SubmitBlocking enqueues a job, waiting for queue space if needed.
func (p *Pool) SubmitBlocking(job Job) error {
	select {
	case <-p.ctx.Done():
		return context.Canceled

	case p.jobQueue <- job:
		return nil
	}
}

// Shutdown stops accepting jobs, drains the queue, and waits up to timeout
// for workers to finish before cancelling them.
func (p *Pool) Shutdown(timeout time.Duration) error {
	close(p.jobQueue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		utils.LogSuccess("WorkerPool", "all workers finished")
		return nil

	case <-time.After(timeout):
		p.cancel()
		utils.LogWarning("WorkerPool", "shutdown timeout exceeded, cancelling workers")
		return ErrShutdownTimeout
	}
}

func (p *Pool) GetStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := p.stats
	stats.QueuedJobs = len(p.jobQueue)
	return stats
}
