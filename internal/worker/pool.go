package worker

import "sync"

type task = func()

// Pool runs submitted tasks on a fixed number of goroutines. Used for work
// that should not hold up a response, like view-counter increments.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) { p.jobs <- f }

// Stop closes the queue and waits for queued tasks to finish.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
