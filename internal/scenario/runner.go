package scenario

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"snap-go/internal/snap"
)

// CommitResult records the ID assigned to a commit step.
type CommitResult struct {
	Step  int
	Label string
	ID    snap.VersionID
}

// CheckoutResult records what a checkout step produced.
// Found is false when the version did not exist.
type CheckoutResult struct {
	Step       int
	ID         snap.VersionID
	Found      bool
	Entries    []*snap.Entry
	Containers []*snap.Container
}

// Result collects the outcome of every commit and checkout step, in step order.
type Result struct {
	Commits   []CommitResult
	Checkouts []CheckoutResult
}

// Runner executes scenarios against a store. Each Run starts from an empty
// working tree; versions accumulate in the store across runs.
type Runner struct {
	store  *snap.Store
	clock  snap.Clock
	logger snap.Logger
}

// NewRunner creates a Runner. clock stamps the entries the scenario creates.
func NewRunner(store *snap.Store, clock snap.Clock, logger snap.Logger) *Runner {
	return &Runner{store: store, clock: clock, logger: logger}
}

// workingTree is the scenario's mutable state, addressed by slash paths.
type workingTree struct {
	folders map[string]*snap.Container
	files   map[string]*snap.Entry

	rootFolders []*snap.Container
	rootFiles   []*snap.Entry
}

// Run executes every step in order and stops at the first failing one.
// A checkout of a missing version fails the run unless the step expects it.
func (r *Runner) Run(sc *Scenario) (*Result, error) {
	r.logger.Info("scenario started", "name", sc.Name, "steps", len(sc.Steps))

	wt := &workingTree{
		folders: make(map[string]*snap.Container),
		files:   make(map[string]*snap.Entry),
	}
	res := &Result{}

	for i, step := range sc.Steps {
		n := i + 1
		if err := step.Validate(); err != nil {
			return res, fmt.Errorf("step %d: %w", n, err)
		}
		if err := r.runStep(wt, res, n, step); err != nil {
			return res, fmt.Errorf("step %d (%s): %w", n, step.Kind(), err)
		}
	}

	r.logger.Info("scenario finished", "name", sc.Name, "commits", len(res.Commits), "checkouts", len(res.Checkouts))
	return res, nil
}

func (r *Runner) runStep(wt *workingTree, res *Result, n int, step Step) error {
	switch step.Kind() {
	case "folder":
		return wt.addFolder(step.Folder, step.In)
	case "file":
		return wt.addFile(snap.NewEntryAt(step.File, step.Content, r.clock.Now()), step.In)
	case "update":
		e, ok := wt.files[step.Update]
		if !ok {
			return fmt.Errorf("unknown file: %s", step.Update)
		}
		e.SetContentAt(step.Content, r.clock.Now())
		return nil
	case "commit":
		id, err := r.store.Commit(wt.rootFiles, wt.rootFolders)
		if err != nil {
			return err
		}
		res.Commits = append(res.Commits, CommitResult{Step: n, Label: step.Commit, ID: id})
		return nil
	case "checkout":
		return r.checkout(res, n, step)
	}
	return fmt.Errorf("unsupported step")
}

func (r *Runner) checkout(res *Result, n int, step Step) error {
	id := snap.VersionID(step.Checkout)
	entries, containers, err := r.store.Checkout(id, nil, nil)
	switch {
	case errors.Is(err, snap.ErrVersionNotFound):
		if !step.ExpectMissing {
			return err
		}
		res.Checkouts = append(res.Checkouts, CheckoutResult{Step: n, ID: id})
		return nil
	case err != nil:
		return err
	case step.ExpectMissing:
		return fmt.Errorf("version %d exists but was expected to be missing", id)
	}

	if len(step.Expect) > 0 {
		got := snap.Paths(entries, containers)
		if !slices.Equal(got, step.Expect) {
			return fmt.Errorf("version %d: got paths %v, want %v", id, got, step.Expect)
		}
	}

	res.Checkouts = append(res.Checkouts, CheckoutResult{
		Step:       n,
		ID:         id,
		Found:      true,
		Entries:    entries,
		Containers: containers,
	})
	return nil
}

func (wt *workingTree) addFolder(name, in string) error {
	c := snap.NewContainer(name)
	if in == "" {
		if _, exists := wt.folders[name]; exists {
			return fmt.Errorf("duplicate folder: %s", name)
		}
		wt.folders[name] = c
		wt.rootFolders = append(wt.rootFolders, c)
		return nil
	}

	parent, ok := wt.folders[in]
	if !ok {
		return fmt.Errorf("unknown folder: %s", in)
	}
	p := path.Join(in, name)
	if _, exists := wt.folders[p]; exists {
		return fmt.Errorf("duplicate folder: %s", p)
	}
	wt.folders[p] = c
	parent.AddContainer(c)
	return nil
}

func (wt *workingTree) addFile(e *snap.Entry, in string) error {
	if in == "" {
		if _, exists := wt.files[e.Name()]; exists {
			return fmt.Errorf("duplicate file: %s", e.Name())
		}
		wt.files[e.Name()] = e
		wt.rootFiles = append(wt.rootFiles, e)
		return nil
	}

	parent, ok := wt.folders[in]
	if !ok {
		return fmt.Errorf("unknown folder: %s", in)
	}
	p := path.Join(in, e.Name())
	if _, exists := wt.files[p]; exists {
		return fmt.Errorf("duplicate file: %s", p)
	}
	wt.files[p] = e
	parent.AddEntry(e)
	return nil
}
