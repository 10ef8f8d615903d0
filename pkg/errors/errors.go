// Package errors provides custom error types for the rem-treebank-annis
// system. These errors enable programmatic error checking and carry enough
// context to diagnose a failed merge run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the rem-treebank-annis system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAmbiguous indicates that a lookup expected to be unique
	// returned more than one result
	ErrAmbiguous = errors.New("ambiguous")

	// ErrMismatch indicates that the treebank and the annotation graph
	// disagree about a document
	ErrMismatch = errors.New("sources do not match")

	// ErrNoOrder indicates that an ordering chain is missing or broken
	ErrNoOrder = errors.New("order relation missing or broken")
)

// BindingError reports a failed or ambiguous binding of a document to its
// treebank file.
type BindingError struct {
	Document string
	Paths    []string
}

// Error implements the error interface
func (e *BindingError) Error() string {
	switch len(e.Paths) {
	case 0:
		return fmt.Sprintf("treebank file for document %s not found", e.Document)
	case 1:
		return fmt.Sprintf("treebank file for document %s: %s", e.Document, e.Paths[0])
	default:
		return fmt.Sprintf("treebank file for document %s is not unique: found at least %s, %s",
			e.Document, e.Paths[0], e.Paths[1])
	}
}

// Is implements errors.Is support
func (e *BindingError) Is(target error) bool {
	if len(e.Paths) > 1 {
		return target == ErrAmbiguous
	}
	return target == ErrNotFound
}

// NewBindingError creates a new BindingError
func NewBindingError(document string, paths ...string) *BindingError {
	return &BindingError{Document: document, Paths: paths}
}

// MismatchError reports that a shared annotation differs between an aligned
// treebank word and its annotation-graph counterpart.
type MismatchError struct {
	Annotation   string
	TreebankNode string
	GraphNode    string
	TreebankVal  string
	GraphVal     string
}

// Error implements the error interface
func (e *MismatchError) Error() string {
	return fmt.Sprintf("sanity check failed: %s for %s and %s doesn't match: '%s' != '%s'",
		e.Annotation, e.TreebankNode, e.GraphNode, e.TreebankVal, e.GraphVal)
}

// Is implements errors.Is support
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// AlignmentError reports a treebank word with no counterpart in the
// annotation graph.
type AlignmentError struct {
	TreebankNode string
}

// Error implements the error interface
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("treebank node %s has no counterpart in the annotation graph", e.TreebankNode)
}

// Is implements errors.Is support
func (e *AlignmentError) Is(target error) bool {
	return target == ErrMismatch
}

// OrderError reports a missing, ambiguous or branching ordering chain in
// either source.
type OrderError struct {
	Source  string // "treebank" or "graph"
	Scope   string // document or sentence the chain belongs to
	Message string
}

// Error implements the error interface
func (e *OrderError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s order for %s: %s", e.Source, e.Scope, e.Message)
	}
	return fmt.Sprintf("%s order: %s", e.Source, e.Message)
}

// Is implements errors.Is support
func (e *OrderError) Is(target error) bool {
	return target == ErrNoOrder
}

// NewOrderError creates a new OrderError
func NewOrderError(source, scope, message string) *OrderError {
	return &OrderError{Source: source, Scope: scope, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "turtle", "graphml", "toml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// UpdateError reports an invalid event in a graph update batch. The batch
// it belongs to is rejected as a whole.
type UpdateError struct {
	Corpus   string
	Event    int
	NodeName string
	Message  string
}

// Error implements the error interface
func (e *UpdateError) Error() string {
	return fmt.Sprintf("invalid update for corpus %s (event %d, node %s): %s",
		e.Corpus, e.Event, e.NodeName, e.Message)
}

// Is implements errors.Is support
func (e *UpdateError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RenameError reports a node name that cannot be rewritten under a corpus
// rename pattern.
type RenameError struct {
	NodeName string
	Message  string
}

// Error implements the error interface
func (e *RenameError) Error() string {
	return fmt.Sprintf("cannot rename node '%s': %s", e.NodeName, e.Message)
}

// Is implements errors.Is support
func (e *RenameError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAmbiguous checks if an error is an ambiguity error
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// IsMismatch checks if an error is a source mismatch error
func IsMismatch(err error) bool {
	return errors.Is(err, ErrMismatch)
}
