package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"

	"snap-go/internal/snap"
)

// DefaultMaxFileSize is the default largest file imported as an entry (1MB).
const DefaultMaxFileSize int64 = 1024 * 1024

// Importer builds working trees from directories. Every directory becomes a
// Container and every regular file an Entry whose content is the file's data
// and whose timestamps are the file's modification time. Symlinks and other
// special files are skipped.
type Importer struct {
	ignore      []string
	maxFileSize int64
	logger      snap.Logger
}

// NewImporter creates an Importer. ignore holds extra patterns on top of the
// defaults and any .snapignore at the import root. A maxFileSize <= 0 means
// DefaultMaxFileSize.
func NewImporter(ignore []string, maxFileSize int64, logger snap.Logger) *Importer {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Importer{
		ignore:      ignore,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ImportDir imports the directory at rawPath as a Container named after the
// directory's base name.
func (im *Importer) ImportDir(rawPath string) (*snap.Container, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return im.ImportFS(os.DirFS(absPath), filepath.Base(absPath))
}

// ImportFS imports all of fsys as a Container called name.
func (im *Importer) ImportFS(fsys iofs.FS, name string) (*snap.Container, error) {
	extra, err := ParseIgnoreFile(fsys, IgnoreFileName)
	if err != nil {
		return nil, err
	}

	patterns := append(append(append([]string{}, defaultIgnorePatterns...), im.ignore...), extra...)
	w := &importWalk{im: im, fsys: fsys, matcher: NewIgnoreMatcher(patterns)}

	root := snap.NewContainer(name)
	if err := w.dir(".", root); err != nil {
		return nil, err
	}

	im.logger.Info("directory imported",
		"name", name,
		"files", w.files,
		"directories", w.dirs,
		"skipped", w.skipped,
	)
	return root, nil
}

// importWalk holds the state of one ImportFS call.
type importWalk struct {
	im      *Importer
	fsys    iofs.FS
	matcher *IgnoreMatcher

	files   int
	dirs    int
	skipped int
}

func (w *importWalk) dir(dir string, into *snap.Container) error {
	entries, err := iofs.ReadDir(w.fsys, dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, d := range entries {
		rel := path.Join(dir, d.Name())
		if w.matcher.Match(rel, d.IsDir()) {
			w.im.logger.Debug("path ignored", "path", rel)
			w.skipped++
			continue
		}

		switch {
		case d.IsDir():
			child := snap.NewContainer(d.Name())
			if err := w.dir(rel, child); err != nil {
				return err
			}
			into.AddContainer(child)
			w.dirs++
		case d.Type().IsRegular():
			entry, err := w.file(rel, d)
			if err != nil {
				return err
			}
			if entry == nil {
				w.skipped++
				continue
			}
			into.AddEntry(entry)
			w.files++
		default:
			w.im.logger.Debug("special file skipped", "path", rel, "mode", d.Type().String())
			w.skipped++
		}
	}
	return nil
}

// file reads one regular file. It returns nil without error when the file
// exceeds the size limit.
func (w *importWalk) file(rel string, d iofs.DirEntry) (*snap.Entry, error) {
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.Size() > w.im.maxFileSize {
		w.im.logger.Warn("file too large, skipped", "path", rel, "size", info.Size(), "max", w.im.maxFileSize)
		return nil, nil
	}

	data, err := iofs.ReadFile(w.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return snap.NewEntryAt(d.Name(), string(data), info.ModTime()), nil
}
