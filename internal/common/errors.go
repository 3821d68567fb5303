// Package common defines the error kinds shared by every gallery backend and
// the front-ends that consume them. Callers should use errors.Is against the
// sentinel kinds to choose a status code or a user-facing message.
package common

import (
	"errors"
	"fmt"
)

var (
	// Error kinds. Every failure leaving a backend matches exactly one of them.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorStorage       = errors.New("storage error")

	// Storage-level causes.
	ErrorNotOpen      = errors.New("not open")
	ErrorInvalidValue = errors.New("invalid value")
)

// ItemError describes a failure related to a single gallery entity.
//
// Kind is one of ErrorNotFound, ErrorAlreadyExists or ErrorStorage. Item names
// the entity ("User", "Album", "Picture", "Tag") or, for storage errors, the
// operation that failed. Key identifies the entity instance, if any.
type ItemError struct {
	Kind error
	Item string
	Key  string
	Err  error
}

func (e *ItemError) Error() string {
	switch {
	case e.Kind == ErrorStorage && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Item, e.Err)
	case e.Kind == ErrorStorage:
		return fmt.Sprintf("%s: %s", e.Kind, e.Item)
	case e.Key == "":
		return fmt.Sprintf("%s %s", e.Item, e.Kind)
	default:
		return fmt.Sprintf("%s %s %s", e.Item, e.Key, e.Kind)
	}
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *ItemError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound reports that the entity identified by key does not exist.
func NotFound(item string, key any) error {
	return &ItemError{Kind: ErrorNotFound, Item: item, Key: formatKey(key)}
}

// AlreadyExists reports that creating the entity would break a uniqueness rule.
func AlreadyExists(item string, key any) error {
	return &ItemError{Kind: ErrorAlreadyExists, Item: item, Key: formatKey(key)}
}

// StorageError reports a failure of the storage medium during op.
// Errors that are already classified are returned unchanged.
func StorageError(op string, err error) error {
	var ie *ItemError
	if errors.As(err, &ie) {
		return err
	}
	return &ItemError{Kind: ErrorStorage, Item: op, Err: err}
}

// KindOf returns the kind of err. Unclassified errors are storage errors.
func KindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrorNotFound):
		return ErrorNotFound
	case errors.Is(err, ErrorAlreadyExists):
		return ErrorAlreadyExists
	default:
		return ErrorStorage
	}
}

func formatKey(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", k)
	default:
		return fmt.Sprintf("%v", k)
	}
}
