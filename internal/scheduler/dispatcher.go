package scheduler

import "sync"

// Dispatcher runs tasks on their own goroutines and lets the host wait for
// them before exiting.
type Dispatcher struct {
	wg sync.WaitGroup
}

func (d *Dispatcher) Go(task func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		task()
	}()
}

// Wait blocks until every dispatched task has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
