// Package parallel runs independent pieces of work, such as the rows of an
// image, on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()

	// RangeFunc calls fn once for every i in [0, n) and returns when all
	// calls have returned.
	RangeFunc func(n int, fn func(i int))
)

type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start creates a pool of numWorkers goroutines, or one per CPU when
// numWorkers < 1. A pool of one worker runs everything on the caller's
// goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Workers returns the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Range is a RangeFunc that spreads the calls over the pool. It must not be
// used after the pool was cancelled.
func (p *Pool) Range(n int, fn func(i int)) {
	var batch sync.WaitGroup
	batch.Add(n)
	for i := range n {
		p.Do(func() {
			defer batch.Done()
			fn(i)
		})
	}
	batch.Wait()
}

// Serial is a RangeFunc that makes every call on the caller's goroutine, in
// order.
func Serial(n int, fn func(i int)) {
	for i := range n {
		fn(i)
	}
}
