package sim

import "sync"

// pool runs agent-day jobs on a fixed set of workers. Agents are
// independent within a day: the catalog is read-only and each agent's ledger
// partition has a single writer, so days can fan out safely.
type pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newPool(workers, queueSize int) *pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	p := &pool{jobs: make(chan func(), queueSize)}
	for i := 0; i < workers; i++ {
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

// submit blocks until the job is queued.
func (p *pool) submit(job func()) {
	p.jobs <- job
}

// stop waits for queued jobs to finish after closing the queue.
func (p *pool) stop() {
	close(p.jobs)
	p.wg.Wait()
}
