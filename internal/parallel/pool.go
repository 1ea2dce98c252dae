// Package parallel schedules bands of independent image lines across a fixed
// set of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// bandsPerWorker controls band granularity. Several bands per worker let
// idle workers steal from busy ones when some lines hold more segments.
const bandsPerWorker = 4

// Band is a half-open range [Start, End) of line indices handled as one
// unit of work. A band owns one scratch buffer for its lifetime.
type Band struct {
	Start, End int
}

// Len returns the number of lines in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// LinePool is a pool of goroutines that process bands of lines.
//
// Each worker has its own queue and steals from the other queues when its
// own is empty.
//
// Thread safety: LinePool is safe for concurrent use.
type LinePool struct {
	workers int

	// queues holds one work queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to exit.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewLinePool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewLinePool(workers int) *LinePool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*bandsPerWorker, 8)

	p := &LinePool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *LinePool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
			continue
		default:
		}

		if stolen := p.steal(id); stolen != nil {
			stolen()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		}
	}
}

// drain runs whatever is left in queue.
func (p *LinePool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *LinePool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run distributes work round-robin across workers and waits until every
// item has returned. If the pool is closed, Run is a no-op.
func (p *LinePool) Run(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer pending.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			pending.Done()
		}
	}

	pending.Wait()
}

// Bands splits n lines into contiguous bands sized for this pool.
// It returns nil when n <= 0.
func (p *LinePool) Bands(n int) []Band {
	return SplitBands(n, p.workers*bandsPerWorker)
}

// ForEachBand splits n lines into bands and calls fn once per band,
// concurrently, returning when all calls have finished.
func (p *LinePool) ForEachBand(n int, fn func(Band)) {
	bands := p.Bands(n)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.Run(work)
}

// Close stops accepting work, lets queued work finish and stops all
// workers. Close is safe to call multiple times.
func (p *LinePool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *LinePool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *LinePool) IsRunning() bool {
	return p.running.Load()
}

// SplitBands divides n lines into at most parts contiguous, non-empty bands
// whose sizes differ by at most one.
func SplitBands(n, parts int) []Band {
	if n <= 0 {
		return nil
	}
	parts = max(min(parts, n), 1)

	bands := make([]Band, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := range bands {
		end := start + size
		if i < extra {
			end++
		}
		bands[i] = Band{Start: start, End: end}
		start = end
	}
	return bands
}
