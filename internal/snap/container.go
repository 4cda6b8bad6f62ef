package snap

// Container is a named node of the working tree holding an ordered list of
// entries and an ordered list of nested containers. Duplicates are allowed
// and nothing is ever removed.
// Containers are owned by the caller and are not safe for concurrent use.
type Container struct {
	name       string
	entries    []*Entry
	containers []*Container

	// frozen is the node this container last froze to, cleared when the
	// container itself changes. Changes further down the tree are detected
	// at freeze time by comparing child nodes.
	frozen *containerNode
}

// NewContainer creates an empty container.
func NewContainer(name string) *Container {
	return &Container{name: name}
}

func (c *Container) Name() string { return c.name }

func (c *Container) SetName(name string) {
	c.name = name
	c.frozen = nil
}

// AddEntry appends e to the container's entries.
func (c *Container) AddEntry(e *Entry) {
	c.entries = append(c.entries, e)
	c.frozen = nil
}

// AddContainer appends child to the container's nested containers.
func (c *Container) AddContainer(child *Container) {
	c.containers = append(c.containers, child)
	c.frozen = nil
}

// Entries returns the container's entries in insertion order.
// The slice is a copy; the entries themselves are the live working-tree objects.
func (c *Container) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// Containers returns the nested containers in insertion order.
// The slice is a copy; the containers themselves are the live working-tree objects.
func (c *Container) Containers() []*Container {
	return append([]*Container(nil), c.containers...)
}

// Len returns the number of direct entries and nested containers.
func (c *Container) Len() (entries, containers int) {
	return len(c.entries), len(c.containers)
}
