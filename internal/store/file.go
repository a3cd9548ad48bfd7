package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source produces the persisted representation for a load.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Sink accepts a full replacement of the persisted representation. Data
// written must only become visible once Close returns nil.
type Sink interface {
	Name() string
	Create() (io.WriteCloser, error)
}

// File is a storage file on disk. It is both a Source and a Sink.
type File string

func (f File) Name() string { return string(f) }

// Open opens the file for reading
func (f File) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Create returns a writer on a temporary file next to f. Close renames it over
// f; if anything fails before that, f keeps its previous content.
func (f File) Create() (io.WriteCloser, error) {
	path := string(f)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &replaceOnClose{File: tmp, target: path}, nil
}

// Exists reports whether the file is present on disk
func (f File) Exists() (bool, error) {
	_, err := os.Stat(string(f))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Touch creates an empty file if it does not exist yet
func (f File) Touch() error {
	file, err := os.OpenFile(string(f), os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// aborter is implemented by sink writers that can discard what was written.
type aborter interface {
	Abort() error
}

type replaceOnClose struct {
	*os.File
	target string
}

// Abort drops the temporary file and leaves the target untouched.
func (r *replaceOnClose) Abort() error {
	err := r.File.Close()
	if rmErr := os.Remove(r.File.Name()); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

func (r *replaceOnClose) Close() error {
	tmpPath := r.File.Name()
	if err := r.File.Sync(); err != nil {
		r.File.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := r.File.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, r.target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
