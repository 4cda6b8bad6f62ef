// Package render prints working trees and version history for the CLI.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"snap-go/internal/snap"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"

	// DefaultWidth is used when the output is not a terminal and no width is configured.
	DefaultWidth = 80

	timeLayout = "2006-01-02 15:04:05"
)

// Options controls tree output.
type Options struct {
	Format      string // FormatText or FormatYAML; empty means text
	ShowContent bool   // text format only
	Width       int    // text format only; <= 0 means DefaultWidth
}

// ValidateFormat returns an error for anything but a known format or "".
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// DetectWidth returns the terminal width of f, or fallback when f is not a
// terminal. A fallback <= 0 means DefaultWidth.
func DetectWidth(f *os.File, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Checkout prints the result of checking out version id.
func Checkout(w io.Writer, id snap.VersionID, entries []*snap.Entry, containers []*snap.Container, opts Options) error {
	if opts.Format == FormatYAML {
		return YAML(w, id, entries, containers)
	}
	if _, err := fmt.Fprintf(w, "version %d:\n", id); err != nil {
		return err
	}
	return Text(w, entries, containers, opts)
}

// Text prints a working tree as an indented listing: loose entries first,
// then each container followed by its contents.
func Text(w io.Writer, entries []*snap.Entry, containers []*snap.Container, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	p := &textPrinter{w: w, showContent: opts.ShowContent, width: width, visiting: make(map[*snap.Container]bool)}
	for _, e := range entries {
		p.entry(e, 1)
	}
	for _, c := range containers {
		p.container(c, 1)
	}
	return p.err
}

type textPrinter struct {
	w           io.Writer
	showContent bool
	width       int
	visiting    map[*snap.Container]bool
	err         error
}

func (p *textPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *textPrinter) entry(e *snap.Entry, depth int) {
	if e == nil {
		return
	}
	line := strings.Repeat("  ", depth) + e.Name()
	if p.showContent {
		line += "  " + preview(e.Content(), p.width-utf8.RuneCountInString(line)-2)
	}
	p.printf("%s\n", line)
}

func (p *textPrinter) container(c *snap.Container, depth int) {
	if c == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if p.visiting[c] {
		p.printf("%s%s/ (cycle)\n", indent, c.Name())
		return
	}
	p.visiting[c] = true
	defer delete(p.visiting, c)

	p.printf("%s%s/\n", indent, c.Name())
	for _, e := range c.Entries() {
		p.entry(e, depth+1)
	}
	for _, child := range c.Containers() {
		p.container(child, depth+1)
	}
}

// preview quotes content on one line, truncated to max runes including quotes.
func preview(content string, max int) string {
	q := fmt.Sprintf("%q", content)
	if max < 6 {
		max = 6
	}
	if utf8.RuneCountInString(q) <= max {
		return q
	}
	runes := []rune(q)
	return string(runes[:max-4]) + "...\""
}

// History prints one line per version, oldest first.
func History(w io.Writer, versions []*snap.Version) error {
	if len(versions) == 0 {
		_, err := fmt.Fprintln(w, "No versions committed.")
		return err
	}
	for _, v := range versions {
		entries, containers := v.Counts()
		if _, err := fmt.Fprintf(w, "#%d  %s  %d entries  %d containers\n",
			v.ID(),
			v.CommittedAt().Format(timeLayout),
			entries,
			containers,
		); err != nil {
			return err
		}
	}
	return nil
}
