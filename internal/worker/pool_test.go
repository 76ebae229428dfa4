package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	count *atomic.Int64
}

func (j *countingJob) Process(_ context.Context) error {
	j.count.Add(1)
	return nil
}

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	var count atomic.Int64
	for i := 0; i < 5; i++ {
		pool.Enqueue(&countingJob{count: &count})
	}

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("processed %d of 5 jobs before timeout", count.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPoolStopIsIdempotent(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	pool.Stop()
	pool.Stop()
}
