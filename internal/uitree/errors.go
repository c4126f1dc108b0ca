package uitree

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a tree construction failure
type ErrorType int

const (
	// ErrTypeEmptyDocument indicates the input held no element at all
	ErrTypeEmptyDocument ErrorType = iota
	// ErrTypeUnbalanced indicates an end element with nothing open
	ErrTypeUnbalanced
	// ErrTypeMismatchedEnd indicates an end element that does not close the open element
	ErrTypeMismatchedEnd
	// ErrTypeMultipleRoots indicates a start element after the root was closed
	ErrTypeMultipleRoots
	// ErrTypeUnterminated indicates input ended with elements still open
	ErrTypeUnterminated
	// ErrTypeDuplicateID indicates a node id was allocated twice
	ErrTypeDuplicateID
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeEmptyDocument:
		return "Empty Document"
	case ErrTypeUnbalanced:
		return "Unbalanced Element"
	case ErrTypeMismatchedEnd:
		return "Mismatched End Element"
	case ErrTypeMultipleRoots:
		return "Multiple Roots"
	case ErrTypeUnterminated:
		return "Unterminated Element"
	case ErrTypeDuplicateID:
		return "Duplicate ID"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// AssemblyError is a structural failure while building a tree. It is fatal:
// no partial tree is returned alongside it.
type AssemblyError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Element string    // Element being processed, if any
	Depth   int       // Assembly stack depth when the error occurred
}

// Error implements the error interface
func (e *AssemblyError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s: %s (element %q, depth %d)", e.Type, e.Message, e.Element, e.Depth)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// IsAssemblyError reports whether err is an AssemblyError of type t.
func IsAssemblyError(err error, t ErrorType) bool {
	var ae *AssemblyError
	if errors.As(err, &ae) {
		return ae.Type == t
	}
	return false
}
