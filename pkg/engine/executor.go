package engine

import (
	"sync"

	"github.com/lumentrace/lumen/pkg/errors"
)

// Executor is a fixed-size worker pool for data-parallel rendering work.
// It is constructed once per render by the orchestrator and passed into
// the engine; there is no process-global pool, so a bad worker count is a
// constructor-time error rather than a runtime panic.
type Executor struct {
	workers int
}

// NewExecutor creates an executor with the given worker count.
func NewExecutor(workers uint) (*Executor, error) {
	if workers < 1 {
		return nil, errors.New(errors.ErrCodeArgument, "thread count must be at least 1, got %d", workers)
	}
	return &Executor{workers: int(workers)}, nil
}

// Workers returns the configured worker count.
func (e *Executor) Workers() int {
	return e.workers
}

// Run dispatches task indices [0, tasks) across the pool and blocks until
// every task has completed. Each index is handed to exactly one worker.
func (e *Executor) Run(tasks int, fn func(task int)) {
	if tasks <= 0 {
		return
	}

	queue := make(chan int, tasks)
	for i := 0; i < tasks; i++ {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				fn(task)
			}
		}()
	}
	wg.Wait()
}
