package models

import (
	"context"
	"errors"
	"fmt"
)

// FetchError reports that a tracked field could not be fetched. The cycle is
// aborted and no state is mutated.
type FetchError struct {
	Field    string
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Field, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StorageReadError reports a snapshot that exists but cannot be read or parsed.
// The file is left in place for inspection.
type StorageReadError struct {
	EntityID string
	Path     string
	Err      error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("snapshot for %s at %s is unreadable: %v", e.EntityID, e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// StorageWriteError reports that a new baseline could not be persisted. The
// report for the cycle has already been emitted when this happens.
type StorageWriteError struct {
	EntityID string
	Path     string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("persist snapshot for %s at %s: %v", e.EntityID, e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// Error kinds used for the error_kind log field.
const (
	ErrorKindFetch        = "fetch"
	ErrorKindStorageRead  = "storage_read"
	ErrorKindStorageWrite = "storage_write"
	ErrorKindCanceled     = "canceled"
	ErrorKindUnknown      = "unknown"
)

// ErrorKind classifies err into one of the ErrorKind constants.
func ErrorKind(err error) string {
	var fetchErr *FetchError
	var readErr *StorageReadError
	var writeErr *StorageWriteError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ErrorKindCanceled
	case errors.As(err, &fetchErr):
		return ErrorKindFetch
	case errors.As(err, &readErr):
		return ErrorKindStorageRead
	case errors.As(err, &writeErr):
		return ErrorKindStorageWrite
	default:
		return ErrorKindUnknown
	}
}
