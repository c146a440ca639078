package services

import (
	"context"
	"fmt"
	"sync"

	"bank-dashboard/internal/utils"
	"bank-dashboard/internal/worker"
)

type fetchTask struct {
	id  string
	run func() error
}

// joinFetches runs independent fetches in parallel on the pool and waits for
// all of them. The join has no ordering requirement between results; errors
// come back in task order so the reported failure is deterministic.
//
// If the context is done before the join completes, the in-flight results are
// abandoned where they are and ErrStaleView comes back instead: a fetch that
// outlives its view must not be applied to anything.
func joinFetches(ctx context.Context, pool *worker.Pool, tasks []fetchTask) error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		i, task := i, task
		job := worker.Job{
			ID: task.id,
			Task: func() error {
				defer wg.Done()
				errs[i] = task.run()
				return errs[i]
			},
		}
		// A saturated pool degrades to a plain goroutine rather than
		// serializing the page load.
		if pool == nil || pool.Submit(job) != nil {
			if pool != nil {
				utils.LogWarning("Fetch", "pool saturated, running %s inline", task.id)
			}
			go func() { _ = job.Task() }()
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrStaleView, ctx.Err())
	case <-done:
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStaleView, err)
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
