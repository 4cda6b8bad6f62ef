// Package scenario runs scripted sequences of working-tree edits, commits and
// checkouts against a snap.Store.
package scenario

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

//go:embed demo.yaml
var demoScenario []byte

// Scenario is a named list of steps, read from YAML.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one scenario action. Exactly one of Folder, File, Update, Commit or
// Checkout must be set; the remaining fields qualify it.
//
//	- folder: docs          # new container, root level unless In is set
//	  in: parent/path
//	- file: a.txt           # new entry, a loose root entry unless In is set
//	  in: docs
//	  content: "text"
//	- update: docs/a.txt    # SetContent on an existing entry
//	  content: "new text"
//	- commit: label         # commit every root folder and loose file
//	- checkout: 1           # check out a version
//	  expect: [docs/, docs/a.txt]
//	  expect_missing: true
type Step struct {
	Folder   string `yaml:"folder,omitempty"`
	File     string `yaml:"file,omitempty"`
	Update   string `yaml:"update,omitempty"`
	Commit   string `yaml:"commit,omitempty"`
	Checkout int64  `yaml:"checkout,omitempty"`

	In            string   `yaml:"in,omitempty"`
	Content       string   `yaml:"content,omitempty"`
	Expect        []string `yaml:"expect,omitempty"`
	ExpectMissing bool     `yaml:"expect_missing,omitempty"`
}

// Kind names the step's action.
func (s Step) Kind() string {
	var kinds []string
	if s.Folder != "" {
		kinds = append(kinds, "folder")
	}
	if s.File != "" {
		kinds = append(kinds, "file")
	}
	if s.Update != "" {
		kinds = append(kinds, "update")
	}
	if s.Commit != "" {
		kinds = append(kinds, "commit")
	}
	if s.Checkout != 0 {
		kinds = append(kinds, "checkout")
	}
	return strings.Join(kinds, "+")
}

// Validate checks the step's shape, not its references.
func (s Step) Validate() error {
	kind := s.Kind()
	switch kind {
	case "":
		return fmt.Errorf("no action set")
	case "folder", "file", "update", "commit", "checkout":
	default:
		return fmt.Errorf("more than one action set: %s", kind)
	}

	if s.In != "" && kind != "folder" && kind != "file" {
		return fmt.Errorf("%s does not take in", kind)
	}
	if s.Content != "" && kind != "file" && kind != "update" {
		return fmt.Errorf("%s does not take content", kind)
	}
	if (len(s.Expect) > 0 || s.ExpectMissing) && kind != "checkout" {
		return fmt.Errorf("%s does not take expectations", kind)
	}
	if len(s.Expect) > 0 && s.ExpectMissing {
		return fmt.Errorf("expect and expect_missing are exclusive")
	}
	if strings.Contains(s.Folder, "/") || strings.Contains(s.File, "/") {
		return fmt.Errorf("names must not contain '/'")
	}
	return nil
}

// Parse reads a scenario from YAML, rejecting unknown keys and malformed steps.
func Parse(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.UnmarshalStrict(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	for i, step := range sc.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// ReadFromFile reads a scenario from the file at path.
func ReadFromFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario file: %w", err)
	}
	defer f.Close()

	sc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading scenario from %s: %w", path, err)
	}
	return sc, nil
}

// Demo returns the built-in scenario: two folders committed, a file added to
// one of them and committed again, then both versions checked out to show
// the first is unaffected, and a missing version requested.
func Demo() *Scenario {
	sc, err := parse(demoScenario)
	if err != nil {
		panic(fmt.Sprintf("embedded demo scenario is invalid: %v", err))
	}
	return sc
}
