// Package loader reads combo files into an ordered Document.
//
// TOML and YAML are supported. Both loaders walk the file in document order
// rather than decoding into a map, because combo precedence follows
// declaration order.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Section names that hold combos. "main" is accepted as an alias.
const (
	SectionCombos = "combos"
	SectionMain   = "main"
)

// KeyDelay is the top-level key for the debounce delay in milliseconds.
const KeyDelay = "delay_ms"

var (
	// ErrUnknownSetting is returned for top-level keys the loader does not know.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrDuplicateCondition is returned when a condition is defined twice.
	// The later definition could never match.
	ErrDuplicateCondition = errors.New("duplicate combo condition")
)

// Entry is one combo definition as written in the file.
type Entry struct {
	// Condition is the left-hand side, e.g. "leftctrl + a".
	Condition string
	// Action is the right-hand side, e.g. "b + wait 10 + c".
	Action string
	// Line is the 1-based line of the entry, or 0 when the format does not
	// report it.
	Line int
}

// Document is the decoded content of a combo file.
type Document struct {
	// Source is the path or name the document was read from.
	Source string
	// DelayMS is the debounce delay. HasDelay reports whether it was set.
	DelayMS  int64
	HasDelay bool
	// Entries in declaration order.
	Entries []Entry
}

// add appends e, rejecting a condition that is already defined.
func (d *Document) add(e Entry) error {
	for _, prev := range d.Entries {
		if prev.Condition != e.Condition {
			continue
		}
		msg := ErrDuplicateCondition.Error()
		if prev.Line > 0 {
			msg = fmt.Sprintf("%s (first defined at line %d)", msg, prev.Line)
		}
		return &ParseError{
			Path:    d.Source,
			Line:    e.Line,
			Key:     e.Condition,
			Message: msg,
			Err:     ErrDuplicateCondition,
		}
	}
	d.Entries = append(d.Entries, e)
	return nil
}

// Loader decodes combo files.
type Loader interface {
	// Load reads the configured path.
	Load() (*Document, error)
	// LoadFrom reads a specific path.
	LoadFrom(path string) (*Document, error)
	// LoadFromReader decodes data read from r. name is used in errors.
	LoadFromReader(name string, r io.Reader) (*Document, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// IsYAML reports whether path names a YAML file.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ForPath returns the loader matching the extension of path: YAML for
// .yaml and .yml, TOML otherwise.
func ForPath(fsys FileSystem, path string) Loader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	if IsYAML(path) {
		return NewYAMLLoaderWithFS(fsys, path)
	}
	return NewTOMLLoaderWithFS(fsys, path)
}

// readFile reads path and wraps failures.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return data, nil
}

func isComboSection(name string) bool {
	return name == SectionCombos || name == SectionMain
}
