package snap

import (
	"fmt"
	"time"
)

// entryNode is the immutable form of an Entry stored in versions.
type entryNode struct {
	name         string
	content      string
	created      time.Time
	lastModified time.Time
}

// containerNode is the immutable form of a Container stored in versions.
// Nodes are shared between versions whenever a subtree did not change, so
// they must never be modified after construction.
type containerNode struct {
	name       string
	entries    []*entryNode
	containers []*containerNode
}

// freezer turns one commit's working set into nodes.
type freezer struct {
	visiting map[*Container]bool
	done     map[*Container]*containerNode
	created  int
	reused   int
}

func newFreezer() *freezer {
	return &freezer{
		visiting: make(map[*Container]bool),
		done:     make(map[*Container]*containerNode),
	}
}

func (f *freezer) entry(e *Entry) *entryNode {
	n, reused := e.freeze()
	f.count(reused)
	return n
}

func (f *freezer) container(c *Container) (*containerNode, error) {
	if n, ok := f.done[c]; ok {
		return n, nil
	}
	if f.visiting[c] {
		return nil, fmt.Errorf("%w: %q", ErrCyclicTree, c.name)
	}
	f.visiting[c] = true
	defer delete(f.visiting, c)

	entries := make([]*entryNode, 0, len(c.entries))
	for _, e := range c.entries {
		if e == nil {
			continue
		}
		entries = append(entries, f.entry(e))
	}

	children := make([]*containerNode, 0, len(c.containers))
	for _, child := range c.containers {
		if child == nil {
			continue
		}
		n, err := f.container(child)
		if err != nil {
			return nil, fmt.Errorf("in %q: %w", c.name, err)
		}
		children = append(children, n)
	}

	// The container's own cache survives only its own mutations; a change
	// below it shows up as a different child node.
	if prev := c.frozen; prev != nil && sameNodes(prev.entries, entries) && sameNodes(prev.containers, children) {
		f.done[c] = prev
		f.count(true)
		return prev, nil
	}

	n := &containerNode{name: c.name, entries: entries, containers: children}
	c.frozen = n
	f.done[c] = n
	f.count(false)
	return n, nil
}

func (f *freezer) count(reused bool) {
	if reused {
		f.reused++
	} else {
		f.created++
	}
}

func sameNodes[T any](a, b []*T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// thawer rebuilds mutable working-tree objects from nodes. A node reached
// twice through one thawer yields the same object, so a checkout keeps the
// shape of what was committed without sharing anything with other checkouts.
type thawer struct {
	entries    map[*entryNode]*Entry
	containers map[*containerNode]*Container
}

func newThawer() *thawer {
	return &thawer{
		entries:    make(map[*entryNode]*Entry),
		containers: make(map[*containerNode]*Container),
	}
}

func (t *thawer) entry(n *entryNode) *Entry {
	if e, ok := t.entries[n]; ok {
		return e
	}
	e := &Entry{
		name:         n.name,
		content:      n.content,
		created:      n.created,
		lastModified: n.lastModified,
		frozen:       n,
	}
	t.entries[n] = e
	return e
}

func (t *thawer) container(n *containerNode) *Container {
	if c, ok := t.containers[n]; ok {
		return c
	}
	c := &Container{
		name:       n.name,
		entries:    make([]*Entry, len(n.entries)),
		containers: make([]*Container, len(n.containers)),
		frozen:     n,
	}
	t.containers[n] = c
	for i, en := range n.entries {
		c.entries[i] = t.entry(en)
	}
	for i, cn := range n.containers {
		c.containers[i] = t.container(cn)
	}
	return c
}

// EntrySnapshot is a read-only view of an entry captured in a Version.
type EntrySnapshot struct {
	n *entryNode
}

func (s EntrySnapshot) Name() string            { return s.n.name }
func (s EntrySnapshot) Content() string         { return s.n.content }
func (s EntrySnapshot) Created() time.Time      { return s.n.created }
func (s EntrySnapshot) LastModified() time.Time { return s.n.lastModified }

// Thaw returns a new mutable Entry with the snapshot's state.
func (s EntrySnapshot) Thaw() *Entry {
	return newThawer().entry(s.n)
}

// ContainerSnapshot is a read-only view of a container captured in a Version,
// including everything nested below it.
type ContainerSnapshot struct {
	n *containerNode
}

func (s ContainerSnapshot) Name() string { return s.n.name }

// Entries returns views of the container's entries in insertion order.
func (s ContainerSnapshot) Entries() []EntrySnapshot {
	return entrySnapshots(s.n.entries)
}

// Containers returns views of the nested containers in insertion order.
func (s ContainerSnapshot) Containers() []ContainerSnapshot {
	return containerSnapshots(s.n.containers)
}

// Thaw returns a new mutable Container tree with the snapshot's state.
func (s ContainerSnapshot) Thaw() *Container {
	return newThawer().container(s.n)
}

func entrySnapshots(nodes []*entryNode) []EntrySnapshot {
	out := make([]EntrySnapshot, len(nodes))
	for i, n := range nodes {
		out[i] = EntrySnapshot{n: n}
	}
	return out
}

func containerSnapshots(nodes []*containerNode) []ContainerSnapshot {
	out := make([]ContainerSnapshot, len(nodes))
	for i, n := range nodes {
		out[i] = ContainerSnapshot{n: n}
	}
	return out
}
