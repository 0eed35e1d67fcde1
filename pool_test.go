package jobpool

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, workers := range []int{0, -1, -100} {
		_, err := New[int](workers)
		require.Error(t, err, "workers=%d", workers)
		require.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestNewStartsPool(t *testing.T) {
	pool, err := New[int](4)
	require.NoError(t, err)
	defer pool.Shutdown()

	id, err := pool.Submit(func() (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestJobsCompleteWithValues(t *testing.T) {
	pool, err := New[int](4)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]int, 100)
	for i := 0; i < 100; i++ {
		i := i
		id, err := pool.Submit(func() (int, error) { return i * 2, nil })
		require.NoError(t, err)
		_, dup := ids[id]
		require.False(t, dup, "id %s issued twice", id)
		ids[id] = i
	}

	pool.Shutdown()

	for id, i := range ids {
		rec, err := pool.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, rec.Status)
		assert.Equal(t, i*2, rec.Value)
	}
}

func TestLookupAfterSubmitNeverNotFound(t *testing.T) {
	pool, err := New[int](2)
	require.NoError(t, err)
	defer pool.Shutdown()

	id, err := pool.Submit(func() (int, error) { return 0, nil })
	require.NoError(t, err)

	// The job may be in any state by now, but it must exist.
	rec, err := pool.Lookup(id)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Status)
}

func TestQueuedJobIsPending(t *testing.T) {
	pool, err := New[int](1)
	require.NoError(t, err)

	gate := make(chan struct{})
	_, err = pool.Submit(func() (int, error) {
		<-gate
		return 0, nil
	})
	require.NoError(t, err)

	// The single worker is blocked on the gate, so this job cannot
	// have been picked up.
	queued, err := pool.Submit(func() (int, error) { return 0, nil })
	require.NoError(t, err)

	rec, err := pool.Lookup(queued)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, rec.Status)

	close(gate)
	pool.Shutdown()

	rec, err = pool.Lookup(queued)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Status)
}

func TestFailedJobRecordsError(t *testing.T) {
	pool, err := New[string](2)
	require.NoError(t, err)

	failed, err := pool.Submit(func() (string, error) {
		return "", errors.New("disk full")
	})
	require.NoError(t, err)

	ok, err := pool.Submit(func() (string, error) { return "fine", nil })
	require.NoError(t, err)

	pool.Shutdown()

	rec, err := pool.Lookup(failed)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, rec.Status)
	require.Error(t, rec.Err)
	assert.Contains(t, rec.Err.Error(), "disk full")

	rec, err = pool.Lookup(ok)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Status)
	assert.Equal(t, "fine", rec.Value)
}

func TestPanickedJobFailsAndWorkerSurvives(t *testing.T) {
	// One worker: if the panic killed it, the follow-up job would
	// never run and Shutdown would hang.
	pool, err := New[int](1)
	require.NoError(t, err)

	aborted, err := pool.Submit(func() (int, error) {
		panic("boom")
	})
	require.NoError(t, err)

	after, err := pool.Submit(func() (int, error) { return 42, nil })
	require.NoError(t, err)

	pool.Shutdown()

	rec, err := pool.Lookup(aborted)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, rec.Status)
	require.Error(t, rec.Err)
	assert.Contains(t, rec.Err.Error(), "aborted")
	assert.Contains(t, rec.Err.Error(), "boom")

	rec, err = pool.Lookup(after)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Status)
	assert.Equal(t, 42, rec.Value)
}

func TestLookupUnknownID(t *testing.T) {
	pool, err := New[int](1)
	require.NoError(t, err)
	defer pool.Shutdown()

	_, err = pool.Lookup(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool, err := New[int](2)
	require.NoError(t, err)
	pool.Shutdown()

	before := pool.Len()
	id, err := pool.Submit(func() (int, error) { return 0, nil })
	require.ErrorIs(t, err, ErrPoolClosed)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, before, pool.Len(), "rejected job must not be registered")
}

func TestShutdownDrainsAcceptedJobs(t *testing.T) {
	pool, err := New[int](3)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, 50)
	for i := 0; i < 50; i++ {
		i := i
		id, err := pool.Submit(func() (int, error) {
			if i%7 == 0 {
				return 0, fmt.Errorf("job %d rejected input", i)
			}
			return i, nil
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	pool.Shutdown()

	for _, id := range ids {
		rec, err := pool.Lookup(id)
		require.NoError(t, err)
		assert.True(t, rec.Status.Terminal(), "job %s left in %s", id, rec.Status)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	pool, err := New[int](2)
	require.NoError(t, err)

	_, err = pool.Submit(func() (int, error) { return 0, nil })
	require.NoError(t, err)

	pool.Shutdown()
	pool.Shutdown()
}

func TestConcurrentSubmitters(t *testing.T) {
	pool, err := New[int](4)
	require.NoError(t, err)

	const submitters = 8
	const perSubmitter = 25

	var mu sync.Mutex
	seen := make(map[uuid.UUID]struct{}, submitters*perSubmitter)

	var wg sync.WaitGroup
	for s := 0; s < submitters; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				id, err := pool.Submit(func() (int, error) { return i, nil })
				if err != nil {
					t.Errorf("submit: %v", err)
					return
				}
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	pool.Shutdown()

	assert.Len(t, seen, submitters*perSubmitter, "every submission issued a distinct id")
	for id := range seen {
		rec, err := pool.Lookup(id)
		require.NoError(t, err)
		assert.True(t, rec.Status.Terminal())
	}
}
