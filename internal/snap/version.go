package snap

import "time"

// VersionID identifies a committed version. IDs start at 1 and increase by
// one with every commit to the same Store.
type VersionID int64

// Version is an immutable snapshot of the entries and containers passed to
// one commit. Nothing reachable from a Version changes after it is created.
type Version struct {
	id          VersionID
	committedAt time.Time
	entries     []*entryNode
	containers  []*containerNode
}

func (v *Version) ID() VersionID          { return v.id }
func (v *Version) CommittedAt() time.Time { return v.committedAt }

// Entries returns views of the committed root-level entries in commit order.
func (v *Version) Entries() []EntrySnapshot {
	return entrySnapshots(v.entries)
}

// Containers returns views of the committed root-level containers in commit order.
func (v *Version) Containers() []ContainerSnapshot {
	return containerSnapshots(v.containers)
}

// Counts returns the number of root-level entries and containers.
func (v *Version) Counts() (entries, containers int) {
	return len(v.entries), len(v.containers)
}
