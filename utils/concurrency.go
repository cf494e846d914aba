package utils

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// WorkerPool runs jobs in batches of at most maxWorkers concurrent goroutines
// and pauses for a random interval between batches.
type WorkerPool struct {
	maxWorkers int
	minPause   time.Duration
	maxPause   time.Duration
	pause      func(ctx context.Context, d time.Duration)
}

// NewWorkerPool creates a WorkerPool. A maxPause below minPause is raised to it.
func NewWorkerPool(maxWorkers int, minPause, maxPause time.Duration) *WorkerPool {
	return &WorkerPool{
		maxWorkers: max(maxWorkers, 1),
		minPause:   minPause,
		maxPause:   max(maxPause, minPause),
		pause:      SleepContext,
	}
}

// Run calls job for every index in [0, n). Batches that have not started when
// ctx is cancelled are skipped; running jobs are waited for.
func (wp *WorkerPool) Run(ctx context.Context, n int, job func(ctx context.Context, i int)) {
	for start := 0; start < n; start += wp.maxWorkers {
		if ctx.Err() != nil {
			return
		}

		end := min(start+wp.maxWorkers, n)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				job(ctx, i)
			}(i)
		}
		wg.Wait()

		if end < n {
			wp.pause(ctx, wp.nextPause())
		}
	}
}

func (wp *WorkerPool) nextPause() time.Duration {
	spread := wp.maxPause - wp.minPause
	if spread <= 0 {
		return wp.minPause
	}
	return wp.minPause + time.Duration(rand.Int63n(int64(spread)))
}

// SleepContext waits for d or until ctx is done, whichever comes first.
func SleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// URLSet is a thread-safe set for tracking visited URLs.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
