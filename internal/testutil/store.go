package testutil

import (
	"testing"

	"snap-go/internal/snap"
)

// NewTestStore creates an empty store with a no-op logger and a fixed clock.
func NewTestStore() *snap.Store {
	return snap.NewStore(snap.NewNopLogger(), FixedClock())
}

// MustCommit commits the working set and fails the test on error.
func MustCommit(t *testing.T, s *snap.Store, entries []*snap.Entry, containers []*snap.Container) snap.VersionID {
	t.Helper()
	id, err := s.Commit(entries, containers)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return id
}

// MustCheckout checks out a version into fresh slices and fails the test on error.
func MustCheckout(t *testing.T, s *snap.Store, id snap.VersionID) ([]*snap.Entry, []*snap.Container) {
	t.Helper()
	entries, containers, err := s.Checkout(id, nil, nil)
	if err != nil {
		t.Fatalf("Checkout(%d) error = %v", id, err)
	}
	return entries, containers
}
