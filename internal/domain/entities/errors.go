package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by every NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique document already exists.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError rejects a name or path before any filesystem or process I/O.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// CommandError is returned when git exits non-zero or cannot be spawned.
type CommandError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s (exit %d): %s", strings.Join(e.Args, " "), e.ExitCode, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Output returns stdout and stderr joined, which is where git reports conditions
// such as conflicts or an empty commit.
func (e *CommandError) Output() string {
	return e.Stdout + "\n" + e.Stderr
}

// ConflictError is returned when a merge stops on conflicting paths.
// The repository has already been restored to a clean state when it is returned.
type ConflictError struct {
	Base  string
	Head  string
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merging %s into %s conflicts in %s", e.Head, e.Base, strings.Join(e.Paths, ", "))
}

// NotFoundError reports a missing document, ref or file.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError builds a NotFoundError for the given kind and key.
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// IsNotFound reports whether err marks a missing document, ref or file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
