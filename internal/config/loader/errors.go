package loader

import "fmt"

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Key is the combo condition the error belongs to (if any).
	Key string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s at line %d, column %d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s at line %d", e.Path, e.Line)
	}
	if e.Key != "" {
		return fmt.Sprintf("parse error in %s, combo %q: %s", where, e.Key, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", where, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
