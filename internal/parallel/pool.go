package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines draining a shared task queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	tasks   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	close   sync.Once
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), max(8, workers*4)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case task := <-p.tasks:
			task()
		}
	}
}

// drain runs tasks queued before Close.
func (p *WorkerPool) drain() {
	for {
		select {
		case task := <-p.tasks:
			task()
		default:
			return
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// ExecuteAll runs every task and waits for all of them to finish.
// On a closed pool the tasks run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		task := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.tasks <- task:
		case <-p.done:
			task()
		}
	}
	wg.Wait()
}

// Close stops the workers once queued tasks have run. It must not be called
// concurrently with ExecuteAll. It is safe to call more than once.
func (p *WorkerPool) Close() {
	p.close.Do(func() {
		p.running.Store(false)
		close(p.done)
		p.wg.Wait()
	})
}
