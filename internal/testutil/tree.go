package testutil

import (
	"snap-go/internal/snap"
)

// DemoTree is the working tree used throughout the tests: two root folders,
// folder1 holding file1.txt and file2.txt and folder2 holding samiul.txt.
type DemoTree struct {
	Folder1 *snap.Container
	Folder2 *snap.Container
	File1   *snap.Entry
	File2   *snap.Entry
	Samiul  *snap.Entry
}

// NewDemoTree builds a DemoTree with timestamps from clock.
func NewDemoTree(clock snap.Clock) *DemoTree {
	t := &DemoTree{
		Folder1: snap.NewContainer("folder1"),
		Folder2: snap.NewContainer("folder2"),
		File1:   snap.NewEntryAt("file1.txt", "Content of file1", clock.Now()),
		File2:   snap.NewEntryAt("file2.txt", "Content of file2", clock.Now()),
		Samiul:  snap.NewEntryAt("samiul.txt", "My name is samiul haque, I am a java Developer", clock.Now()),
	}
	t.Folder1.AddEntry(t.File1)
	t.Folder1.AddEntry(t.File2)
	t.Folder2.AddEntry(t.Samiul)
	return t
}

// Roots returns the root-level containers of the tree.
func (t *DemoTree) Roots() []*snap.Container {
	return []*snap.Container{t.Folder1, t.Folder2}
}
