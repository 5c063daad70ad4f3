package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/config/loader"
)

// AppName names the directory under the XDG config home.
const AppName = "keychord"

// defaultFiles are searched in order by DefaultPath.
var defaultFiles = []string{"config.toml", "config.yaml", "config.yml"}

// Load reads the combo file at path. The format is chosen by extension.
// Any malformed entry fails the whole load.
func Load(path string) (*combo.Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load on a custom file system.
func LoadFS(fsys loader.FileSystem, path string) (*combo.Config, error) {
	doc, err := loader.ForPath(fsys, path).Load()
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// LoadReader reads a combo file from r. name picks the format the same
// way a path does and is used in error messages.
func LoadReader(name string, r io.Reader) (*combo.Config, error) {
	doc, err := loader.ForPath(loader.DefaultFS(), name).LoadFromReader(name, r)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Build converts a decoded document into a combo.Config, parsing every
// condition and action. Errors are returned as *ParseError.
func Build(doc *loader.Document) (*combo.Config, error) {
	var delay time.Duration
	if doc.HasDelay {
		if doc.DelayMS < 0 {
			return nil, &ParseError{
				Path:    doc.Source,
				Message: fmt.Sprintf("%v: %s = %d", ErrInvalidDelay, loader.KeyDelay, doc.DelayMS),
				Err:     ErrInvalidDelay,
			}
		}
		delay = time.Duration(doc.DelayMS) * time.Millisecond
	}

	combos := make([]combo.Combo, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		c, err := buildCombo(entry)
		if err != nil {
			return nil, &ParseError{
				Path:    doc.Source,
				Line:    entry.Line,
				Key:     entry.Condition,
				Message: err.Error(),
				Err:     err,
			}
		}
		combos = append(combos, c)
	}

	return combo.NewConfig(combos, delay), nil
}

func buildCombo(entry loader.Entry) (combo.Combo, error) {
	required, err := ParseCondition(entry.Condition)
	if err != nil {
		return combo.Combo{}, fmt.Errorf("condition: %w", err)
	}
	actions, err := ParseAction(entry.Action)
	if err != nil {
		return combo.Combo{}, fmt.Errorf("action: %w", err)
	}
	return combo.Combo{
		Name:     strings.TrimSpace(entry.Condition),
		Required: combo.NewHashSet(required...),
		Actions:  actions,
	}, nil
}

// DefaultPath returns the first existing combo file under the XDG config
// directories, or $XDG_CONFIG_HOME/keychord/config.toml when none exists.
func DefaultPath() string {
	for _, name := range defaultFiles {
		if p, err := xdg.SearchConfigFile(filepath.Join(AppName, name)); err == nil {
			return p
		}
	}
	return filepath.Join(xdg.ConfigHome, AppName, defaultFiles[0])
}

// IsParseError reports whether err came from a malformed combo file.
func IsParseError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}
