package snap

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrVersionNotFound is returned when no committed version has the requested ID.
	ErrVersionNotFound = errors.New("version not found")

	// ErrCyclicTree is returned by Commit when a container contains itself.
	ErrCyclicTree = errors.New("container contains itself")
)

// history is a published, immutable view of the committed versions.
// versions[i] has ID i+1.
type history struct {
	versions []*Version
}

// Store owns the append-only history of versions. It assigns version IDs,
// freezes working trees on commit and hands out independent copies on checkout.
//
// Store is safe for concurrent use. Commits are serialized; readers load the
// current history without locking and always see a consistent prefix of it.
type Store struct {
	mu     sync.Mutex // serializes commits
	nextID VersionID
	hist   atomic.Pointer[history]

	logger Logger
	clock  Clock
}

// NewStore creates an empty store. The first commit gets ID 1.
func NewStore(logger Logger, clock Clock) *Store {
	s := &Store{
		nextID: 1,
		logger: logger,
		clock:  clock,
	}
	s.hist.Store(&history{})
	return s
}

// Commit freezes the given entries and containers, including everything
// nested below the containers, into a new Version and returns its ID.
// Later changes to the working tree never alter the committed version.
// Nil elements are skipped. Empty input is a valid commit.
//
// The only failure is ErrCyclicTree; no ID is consumed in that case.
func (s *Store) Commit(entries []*Entry, containers []*Container) (VersionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := newFreezer()

	entryNodes := make([]*entryNode, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		entryNodes = append(entryNodes, f.entry(e))
	}

	containerNodes := make([]*containerNode, 0, len(containers))
	for _, c := range containers {
		if c == nil {
			continue
		}
		n, err := f.container(c)
		if err != nil {
			s.logger.Error("commit rejected", "error", err)
			return 0, fmt.Errorf("freezing working tree: %w", err)
		}
		containerNodes = append(containerNodes, n)
	}

	v := &Version{
		id:          s.nextID,
		committedAt: s.clock.Now(),
		entries:     entryNodes,
		containers:  containerNodes,
	}

	// Readers holding the old history only ever look at its own length, so
	// appending into spare capacity of the shared backing array is safe.
	old := s.hist.Load()
	s.hist.Store(&history{versions: append(old.versions, v)})
	s.nextID++

	s.logger.Info("version committed",
		"version", v.id,
		"entries", len(entryNodes),
		"containers", len(containerNodes),
	)
	s.logger.Debug("nodes frozen", "version", v.id, "created", f.created, "reused", f.reused)
	return v.id, nil
}

// Checkout appends independent copies of the entries and containers of
// version id to the given slices and returns the extended slices, in the
// manner of append. The copies share nothing with the store or with the
// results of any other checkout.
//
// If id was never committed, the slices are returned unchanged together with
// an error wrapping ErrVersionNotFound.
func (s *Store) Checkout(id VersionID, entries []*Entry, containers []*Container) ([]*Entry, []*Container, error) {
	v, err := s.Version(id)
	if err != nil {
		s.logger.Warn("checkout failed", "version", id, "error", err)
		return entries, containers, fmt.Errorf("checking out: %w", err)
	}

	t := newThawer()
	for _, n := range v.entries {
		entries = append(entries, t.entry(n))
	}
	for _, n := range v.containers {
		containers = append(containers, t.container(n))
	}

	s.logger.Debug("version checked out", "version", id)
	return entries, containers, nil
}

// Version returns the committed version with the given ID.
func (s *Store) Version(id VersionID) (*Version, error) {
	h := s.hist.Load()
	if id < 1 || int64(id) > int64(len(h.versions)) {
		return nil, fmt.Errorf("version %d: %w", id, ErrVersionNotFound)
	}
	return h.versions[id-1], nil
}

// Versions returns every committed version, oldest first.
func (s *Store) Versions() []*Version {
	h := s.hist.Load()
	return append([]*Version(nil), h.versions...)
}

// Len returns the number of committed versions.
func (s *Store) Len() int {
	return len(s.hist.Load().versions)
}
