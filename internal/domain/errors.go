package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrInputNotFound     = errors.New("input not found")
	ErrMalformedDocument = errors.New("malformed document")
	ErrNameCollision     = errors.New("name collision")
)

// MalformedError points at the part of a document that violated a
// structural assumption. Path uses JSON-path-like notation, e.g.
// "entities[1].children[0].name".
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed document: %s: %s", e.Path, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedDocument }

// NewMalformedError creates a MalformedError for a single location.
func NewMalformedError(path, reason string) *MalformedError {
	return &MalformedError{Path: path, Reason: reason}
}

// CollisionError reports an original entity name that was assigned two
// different new names in the same run.
type CollisionError struct {
	Original string
	First    string
	Second   string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("name collision: %q renamed to both %q and %q", e.Original, e.First, e.Second)
}

func (e *CollisionError) Unwrap() error { return ErrNameCollision }
