package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// indexed keeps the position of a job so results can be put back in submission order.
type indexed[T any] struct {
	pos int
	val T
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexed[T]
	results    chan indexed[G]
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexed[T], jobQueueSize),
		results:    make(chan indexed[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- indexed[G]{pos: job.pos, val: jobFunc(ctx, job.val)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(pos int, job T) {
	wp.jobQueue <- indexed[T]{pos: pos, val: job}
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Run processes jobs on numWorkers goroutines and returns the results in the order of jobs.
// jobFunc must not panic. cancellation is left to jobFunc, every job gets a result.
func Run[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	out := make([]G, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(ctx, jobFunc)
	for i, job := range jobs {
		wp.AddJob(i, job)
	}
	wp.Close()
	wp.Wait()

	for res := range wp.results {
		out[res.pos] = res.val
	}
	return out
}
