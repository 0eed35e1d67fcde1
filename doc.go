// Package jobpool provides a fixed-size worker pool that executes
// submitted jobs concurrently and tracks each job's lifecycle and
// outcome in an in-memory registry.
//
// A job is any func() (T, error). Submission is fire-and-forget: it
// returns a unique job id immediately, and the outcome is retrieved
// later by that id.
//
// # Basic Usage
//
//	pool, err := jobpool.New[int](4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Shutdown()
//
//	id, err := pool.Submit(func() (int, error) {
//	    return compute(), nil
//	})
//
//	// later, possibly from another goroutine
//	rec, err := pool.Lookup(id)
//	if err == nil && rec.Status == jobpool.StatusCompleted {
//	    fmt.Println(rec.Value)
//	}
//
// # Shutdown
//
// Shutdown closes the submission side and blocks until every already
// accepted job has been executed and all workers have exited. Jobs
// submitted after shutdown begins are rejected with ErrPoolClosed and
// are never registered.
//
// # Failures
//
// A job that returns an error, or panics while running, ends in
// StatusFailed with a failure description. The worker that ran it
// recovers and keeps serving jobs, so the pool always keeps its full
// worker count.
package jobpool
