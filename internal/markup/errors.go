package markup

import (
	"errors"
	"fmt"
)

// ErrorType categorizes read failures.
type ErrorType int

const (
	// ErrTypeIO indicates the document could not be read
	ErrTypeIO ErrorType = iota
	// ErrTypeSyntax indicates malformed XML or YAML
	ErrTypeSyntax
	// ErrTypeFormat indicates an unsupported file type or a YAML document
	// that does not follow the element shape
	ErrTypeFormat
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeIO:
		return "IO"
	case ErrTypeSyntax:
		return "Syntax"
	case ErrTypeFormat:
		return "Format"
	default:
		return "Unknown"
	}
}

// ReadError is a failure to turn a document into parser events. Structural
// problems found while assembling are uitree.AssemblyError values instead.
type ReadError struct {
	Type ErrorType
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s error: %v", e.Path, e.Type, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Type, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError reports whether err is a ReadError of the given type.
func IsReadError(err error, t ErrorType) bool {
	var re *ReadError
	return errors.As(err, &re) && re.Type == t
}
