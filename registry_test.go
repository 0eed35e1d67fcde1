package jobpool

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegistryInsertAndGet(t *testing.T) {
	reg := newRegistry[string]()
	id := uuid.New()

	reg.insert(id)

	rec, ok := reg.get(id)
	if !ok {
		t.Fatal("expected record after insert")
	}
	if rec.Status != StatusPending {
		t.Errorf("expected %s, got %s", StatusPending, rec.Status)
	}
	if rec.ID != id {
		t.Errorf("expected id %s, got %s", id, rec.ID)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := newRegistry[string]()

	if _, ok := reg.get(uuid.New()); ok {
		t.Error("expected no record for an unknown id")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := newRegistry[string]()
	id := uuid.New()

	reg.insert(id)
	reg.markProcessing(id)

	rec, _ := reg.get(id)
	if rec.Status != StatusProcessing {
		t.Fatalf("expected %s, got %s", StatusProcessing, rec.Status)
	}

	reg.complete(id, "done")

	rec, _ = reg.get(id)
	if rec.Status != StatusCompleted {
		t.Fatalf("expected %s, got %s", StatusCompleted, rec.Status)
	}
	if rec.Value != "done" {
		t.Errorf("expected value %q, got %q", "done", rec.Value)
	}
}

func TestRegistryFailure(t *testing.T) {
	reg := newRegistry[string]()
	id := uuid.New()

	reg.insert(id)
	reg.markProcessing(id)
	reg.fail(id, errors.New("out of memory"))

	rec, _ := reg.get(id)
	if rec.Status != StatusFailed {
		t.Fatalf("expected %s, got %s", StatusFailed, rec.Status)
	}
	if rec.Err == nil || rec.Err.Error() != "out of memory" {
		t.Errorf("unexpected failure: %v", rec.Err)
	}
}

func TestRegistryNoTerminalRegression(t *testing.T) {
	reg := newRegistry[string]()
	id := uuid.New()

	reg.insert(id)
	reg.markProcessing(id)
	reg.complete(id, "first")

	// None of these may move the record out of its terminal state.
	reg.fail(id, errors.New("late failure"))
	reg.markProcessing(id)
	reg.complete(id, "second")

	rec, _ := reg.get(id)
	if rec.Status != StatusCompleted {
		t.Errorf("record regressed to %s", rec.Status)
	}
	if rec.Value != "first" {
		t.Errorf("terminal value overwritten: %q", rec.Value)
	}
	if rec.Err != nil {
		t.Errorf("terminal record gained an error: %v", rec.Err)
	}
}

func TestRegistryNoSkipToTerminal(t *testing.T) {
	reg := newRegistry[string]()
	id := uuid.New()

	reg.insert(id)
	// A pending record cannot jump straight to a terminal state.
	reg.complete(id, "skipped")

	rec, _ := reg.get(id)
	if rec.Status != StatusPending {
		t.Errorf("expected %s, got %s", StatusPending, rec.Status)
	}
}

func TestRegistryUpdateUnknownIDIsNoop(t *testing.T) {
	reg := newRegistry[string]()

	reg.markProcessing(uuid.New())
	reg.complete(uuid.New(), "ghost")
	reg.fail(uuid.New(), errors.New("ghost"))

	if got := reg.len(); got != 0 {
		t.Errorf("expected empty registry, got %d records", got)
	}
}
