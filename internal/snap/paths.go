package snap

// Paths lists the working set as slash-separated paths, depth first in
// insertion order: loose entries by name, then each container as "name/"
// followed by its entries and nested containers. A container that contains
// itself is listed once per cycle and not descended into again.
func Paths(entries []*Entry, containers []*Container) []string {
	var out []string
	for _, e := range entries {
		if e != nil {
			out = append(out, e.name)
		}
	}
	visiting := make(map[*Container]bool)
	for _, c := range containers {
		out = appendContainerPaths(out, "", c, visiting)
	}
	return out
}

func appendContainerPaths(out []string, prefix string, c *Container, visiting map[*Container]bool) []string {
	if c == nil || visiting[c] {
		return out
	}
	visiting[c] = true
	defer delete(visiting, c)

	dir := prefix + c.name + "/"
	out = append(out, dir)
	for _, e := range c.entries {
		if e != nil {
			out = append(out, dir+e.name)
		}
	}
	for _, child := range c.containers {
		out = appendContainerPaths(out, dir, child, visiting)
	}
	return out
}
