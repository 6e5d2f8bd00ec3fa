package concurrent

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunPreservesOrder(t *testing.T) {
	jobs := make([]int, 100)
	for i := range jobs {
		jobs[i] = i
	}

	var calls atomic.Int64
	out := Run[int, int](context.Background(), 8, jobs, func(ctx context.Context, job int) int {
		calls.Add(1)
		if job%7 == 0 {
			time.Sleep(time.Millisecond)
		}
		return job * job
	})

	assert.Equal(t, int64(len(jobs)), calls.Load())
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestRunEmpty(t *testing.T) {
	out := Run[string, int](context.Background(), 4, []string{}, func(ctx context.Context, job string) int {
		return len(job)
	})
	assert.Empty(t, out)
}

func TestRunPassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := Run[int, error](ctx, 0, []int{1, 2, 3}, func(ctx context.Context, job int) error {
		return ctx.Err()
	})
	for _, err := range out {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
