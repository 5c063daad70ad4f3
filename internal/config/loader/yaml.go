package loader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads combo files written in YAML.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads the configured path.
func (l *YAMLLoader) Load() (*Document, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a specific path.
func (l *YAMLLoader) LoadFrom(path string) (*Document, error) {
	data, err := readFile(l.fs, path)
	if err != nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader decodes YAML read from r.
func (l *YAMLLoader) LoadFromReader(name string, r io.Reader) (*Document, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return l.parse(name, data)
}

func (l *YAMLLoader) parse(source string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	doc := &Document{Source: source}

	// An empty file decodes to a zero node.
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, nodeError(source, top, "top level must be a mapping")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		k, v := top.Content[i], top.Content[i+1]
		switch {
		case k.Value == KeyDelay:
			var ms int64
			if err := v.Decode(&ms); err != nil {
				perr := nodeError(source, v, fmt.Sprintf("%s must be an integer", KeyDelay))
				perr.Err = err
				return nil, perr
			}
			doc.DelayMS = ms
			doc.HasDelay = true
		case isComboSection(k.Value):
			if err := l.entries(source, v, doc); err != nil {
				return nil, err
			}
		default:
			perr := nodeError(source, k, fmt.Sprintf("%v %q", ErrUnknownSetting, k.Value))
			perr.Err = ErrUnknownSetting
			return nil, perr
		}
	}

	return doc, nil
}

func (l *YAMLLoader) entries(source string, section *yaml.Node, doc *Document) error {
	// "combos:" with nothing after it is an empty table.
	if section.Kind == yaml.ScalarNode && section.Tag == "!!null" {
		return nil
	}
	if section.Kind != yaml.MappingNode {
		return nodeError(source, section, "combos must be a mapping")
	}

	for i := 0; i+1 < len(section.Content); i += 2 {
		k, v := section.Content[i], section.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nodeError(source, k, "combo condition must be a string")
		}
		if v.Kind != yaml.ScalarNode {
			perr := nodeError(source, v, "action must be a string")
			perr.Key = k.Value
			return perr
		}
		if err := doc.add(Entry{
			Condition: k.Value,
			Action:    v.Value,
			Line:      k.Line,
		}); err != nil {
			return err
		}
	}
	return nil
}

func nodeError(source string, n *yaml.Node, msg string) *ParseError {
	return &ParseError{
		Path:    source,
		Line:    n.Line,
		Column:  n.Column,
		Message: msg,
	}
}
