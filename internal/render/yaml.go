package render

import (
	"fmt"
	"io"
	"time"

	yaml "gopkg.in/yaml.v2"

	"snap-go/internal/snap"
)

type yamlEntry struct {
	Name         string `yaml:"name"`
	Content      string `yaml:"content"`
	Created      string `yaml:"created"`
	LastModified string `yaml:"last_modified"`
}

type yamlContainer struct {
	Name       string          `yaml:"name"`
	Entries    []yamlEntry     `yaml:"entries,omitempty"`
	Containers []yamlContainer `yaml:"containers,omitempty"`
}

type yamlCheckout struct {
	Version    int64           `yaml:"version"`
	Entries    []yamlEntry     `yaml:"entries,omitempty"`
	Containers []yamlContainer `yaml:"containers,omitempty"`
}

// YAML prints the result of checking out version id as a YAML document.
// A container that contains itself is emitted once without its contents.
func YAML(w io.Writer, id snap.VersionID, entries []*snap.Entry, containers []*snap.Container) error {
	doc := yamlCheckout{Version: int64(id)}
	visiting := make(map[*snap.Container]bool)
	for _, e := range entries {
		if e != nil {
			doc.Entries = append(doc.Entries, toYAMLEntry(e))
		}
	}
	for _, c := range containers {
		if c != nil {
			doc.Containers = append(doc.Containers, toYAMLContainer(c, visiting))
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing yaml: %w", err)
	}
	return nil
}

func toYAMLEntry(e *snap.Entry) yamlEntry {
	return yamlEntry{
		Name:         e.Name(),
		Content:      e.Content(),
		Created:      e.Created().UTC().Format(time.RFC3339),
		LastModified: e.LastModified().UTC().Format(time.RFC3339),
	}
}

func toYAMLContainer(c *snap.Container, visiting map[*snap.Container]bool) yamlContainer {
	out := yamlContainer{Name: c.Name()}
	if visiting[c] {
		return out
	}
	visiting[c] = true
	defer delete(visiting, c)

	for _, e := range c.Entries() {
		if e != nil {
			out.Entries = append(out.Entries, toYAMLEntry(e))
		}
	}
	for _, child := range c.Containers() {
		if child != nil {
			out.Containers = append(out.Containers, toYAMLContainer(child, visiting))
		}
	}
	return out
}
