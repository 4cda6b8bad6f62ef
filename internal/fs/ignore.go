package fs

import (
	"bufio"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"strings"
)

// IgnoreFileName is the file at an import root listing extra ignore rules.
const IgnoreFileName = ".snapignore"

// defaultIgnorePatterns are always applied regardless of config or .snapignore.
var defaultIgnorePatterns = []string{IgnoreFileName}

// ignoreRule is one parsed line of an ignore list.
type ignoreRule struct {
	glob     string
	anchored bool // match the whole relative path instead of the basename
	dirOnly  bool // trailing '/': match directories only
	negate   bool // leading '!': re-include what earlier rules ignored
}

func (r ignoreRule) matches(relativePath string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if r.anchored {
		return matchSegments(strings.Split(r.glob, "/"), strings.Split(relativePath, "/"))
	}
	ok, _ := path.Match(r.glob, path.Base(relativePath))
	return ok
}

// matchSegments matches slash-separated pattern segments against path
// segments. A "**" segment matches zero or more path segments.
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			for i := len(parts); i >= 0; i-- {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		if ok, _ := path.Match(p, parts[0]); !ok {
			return false
		}
		parts = parts[1:]
	}
	return len(parts) == 0
}

// IgnoreMatcher decides which slash-separated relative paths an import skips.
// Rules are gitignore-like:
//
//	*.log      basename glob, matches at any depth
//	/notes     leading '/' anchors to the import root
//	build/out  a '/' inside also anchors
//	docs/**/x  "**" spans any number of directories
//	tmp/       trailing '/' matches directories only
//	!keep.log  re-includes a path an earlier rule ignored
//
// The last matching rule wins. Malformed globs are dropped.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw rule lines.
// Blank lines and lines starting with '#' are skipped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, line := range lines {
		if r, ok := parseIgnoreRule(line); ok {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

func parseIgnoreRule(line string) (ignoreRule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}

	var r ignoreRule
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		r.negate = true
		line = rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		r.dirOnly = true
		line = rest
	}
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		r.anchored = true
		line = rest
	}
	if strings.Contains(line, "/") {
		r.anchored = true
	}
	if line == "" {
		return ignoreRule{}, false
	}
	if _, err := path.Match(line, ""); err != nil {
		return ignoreRule{}, false
	}

	r.glob = line
	return r, true
}

// Len returns the number of usable rules.
func (m *IgnoreMatcher) Len() int { return len(m.rules) }

// Match reports whether relativePath should be ignored. isDir tells
// directory-only rules whether they apply.
func (m *IgnoreMatcher) Match(relativePath string, isDir bool) bool {
	if relativePath == "" || relativePath == "." {
		return false
	}

	ignored := false
	for _, r := range m.rules {
		if r.matches(relativePath, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

// ParseIgnoreFile reads an ignore file from fsys and returns its raw lines.
// A missing file yields nil and no error.
func ParseIgnoreFile(fsys iofs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
