package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// TOMLLoader loads combo files written in TOML.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads the configured path.
func (l *TOMLLoader) Load() (*Document, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a specific path.
func (l *TOMLLoader) LoadFrom(path string) (*Document, error) {
	data, err := readFile(l.fs, path)
	if err != nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader decodes TOML read from r.
func (l *TOMLLoader) LoadFromReader(name string, r io.Reader) (*Document, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse(name, data)
}

// parse decodes data twice: once into a map to check syntax and value
// types, then with the streaming parser to recover declaration order.
func (l *TOMLLoader) parse(source string, data []byte) (*Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	doc := &Document{Source: source}
	if err := l.validate(source, raw, doc); err != nil {
		return nil, err
	}

	var p unstable.Parser
	p.Reset(data)

	var section []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			section = keyParts(expr.Key())
		case unstable.KeyValue:
			full := append(append([]string(nil), section...), keyParts(expr.Key())...)
			if len(full) == 0 || !isComboSection(full[0]) {
				continue
			}
			value := expr.Value()
			switch {
			case len(full) == 2 && value.Kind == unstable.String:
				entry := Entry{
					Condition: full[1],
					Action:    string(value.Data),
					Line:      keyLine(data, expr.Key()),
				}
				if err := doc.add(entry); err != nil {
					return nil, err
				}
			case len(full) == 1 && value.Kind == unstable.InlineTable:
				it := value.Children()
				for it.Next() {
					kv := it.Node()
					parts := keyParts(kv.Key())
					if len(parts) != 1 {
						continue
					}
					entry := Entry{
						Condition: parts[0],
						Action:    string(kv.Value().Data),
						Line:      keyLine(data, kv.Key()),
					}
					if err := doc.add(entry); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	return doc, nil
}

// validate checks the decoded map and fills in the delay.
func (l *TOMLLoader) validate(source string, raw map[string]any, doc *Document) error {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case k == KeyDelay:
			ms, ok := raw[k].(int64)
			if !ok {
				return &ParseError{
					Path:    source,
					Message: fmt.Sprintf("%s must be an integer, got %T", KeyDelay, raw[k]),
				}
			}
			doc.DelayMS = ms
			doc.HasDelay = true
		case isComboSection(k):
			table, ok := raw[k].(map[string]any)
			if !ok {
				return &ParseError{
					Path:    source,
					Message: fmt.Sprintf("%s must be a table, got %T", k, raw[k]),
				}
			}
			for cond, action := range table {
				if _, ok := action.(string); !ok {
					return &ParseError{
						Path:    source,
						Key:     cond,
						Message: fmt.Sprintf("action must be a string, got %T", action),
					}
				}
			}
		default:
			return &ParseError{
				Path:    source,
				Message: fmt.Sprintf("%v %q", ErrUnknownSetting, k),
				Err:     ErrUnknownSetting,
			}
		}
	}
	return nil
}

// keyLine returns the 1-based line of the first key part.
func keyLine(data []byte, it unstable.Iterator) int {
	if !it.Next() {
		return 0
	}
	off := int(it.Node().Raw.Offset)
	if off > len(data) {
		return 0
	}
	return bytes.Count(data[:off], []byte("\n")) + 1
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
