package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no player carries the requested key
	ErrNotFound = errors.New("player not found")
	// ErrDuplicateKey matches every *DuplicateKeyError
	ErrDuplicateKey = errors.New("duplicate player key")
)

// DuplicateKeyError is returned when a player key is already in the store.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("player with key '%s' already exists", e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// StorageReadError wraps the failure that aborted a load.
type StorageReadError struct {
	Name string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("failed to read storage '%s': %v", e.Name, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// StorageWriteError wraps the failure that aborted a save.
type StorageWriteError struct {
	Name string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to save inventory to file with name '%s': %v", e.Name, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
