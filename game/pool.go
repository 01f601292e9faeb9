package game

import (
	"log/slog"
	"sync"
)

// Pool bounds how many behavior loops run at once. Animals submitted while
// the pool is full wait in FIFO order and start as running loops finish.
// A cancelled loop keeps its slot until its goroutine has returned.
type Pool struct {
	mu       sync.Mutex
	capacity int
	running  map[*Animal]struct{}
	queue    []*Animal

	wg sync.WaitGroup // tracks live loop goroutines
}

// NewPool creates a pool running at most capacity loops.
func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		capacity: capacity,
		running:  make(map[*Animal]struct{}, capacity),
	}
}

// Submit starts the animal's loop if a slot is free and queues it otherwise.
// It reports whether the loop was started.
func (p *Pool) Submit(a *Animal) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.running) < p.capacity {
		p.startLocked(a)
		return true
	}
	p.queue = append(p.queue, a)
	return false
}

// Cancel stops a running loop or drops a queued one. The animal is
// interrupted either way. A running loop frees its slot from onCompletion;
// a dropped one is released at once.
func (p *Pool) Cancel(a *Animal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	a.Interrupt()
	for i, q := range p.queue {
		if q == a {
			p.queue = append(p.queue[:i], p.queue[i+1:]...)
			a.release()
			return
		}
	}
}

// Restart interrupts every running and queued animal and empties the pool.
// Loops from before the restart that finish later are ignored, so new loops
// may start while the old ones drain.
func (p *Pool) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for a := range p.running {
		a.Interrupt()
	}
	for _, a := range p.queue {
		a.Interrupt()
		a.release()
	}
	clear(p.running)
	p.queue = nil
}

// Wait blocks until every loop goroutine has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Running returns the number of started loops.
func (p *Pool) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.running)
}

// Queued returns the number of animals waiting for a slot.
func (p *Pool) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *Pool) startLocked(a *Animal) {
	p.running[a] = struct{}{}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		a.run()
		p.onCompletion(a)
		a.release()
	}()
}

// onCompletion frees the finished animal's slot and promotes the next queued one.
func (p *Pool) onCompletion(a *Animal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.running[a]; !ok {
		return
	}
	delete(p.running, a)
	p.promoteLocked()
}

func (p *Pool) promoteLocked() {
	for len(p.queue) > 0 && len(p.running) < p.capacity {
		next := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		if next.Dead() {
			next.release()
			continue
		}
		slog.Info("animal promoted", "id", next.ID, "species", next.Species, "queued", len(p.queue))
		p.startLocked(next)
	}
}
