package workers

// Workers aggregates background workers so the server can launch them as a
// unit.
type Workers struct {
	workers []Worker
}

// NewWorkers collects the given workers into an aggregate.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop shuts down every worker that implements [Stopper], in reverse start
// order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		if stopper, ok := w.workers[i].(Stopper); ok {
			stopper.Stop()
		}
	}
}
