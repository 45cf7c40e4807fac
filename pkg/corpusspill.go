// Package pkg provides reusable utilities for stitch.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Spill is a generic append-only store that keeps items of type T on disk
// instead of in memory. Long generation runs spill every produced corpus
// entry through it.
type Spill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type gobSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpill creates a Spill backed by a fresh temp file.
func NewSpill[T any]() (Spill[T], error) {
	dir := os.TempDir()

	file, err := os.CreateTemp(dir, "stitch-spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "dir", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &gobSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Len implements Spill.
func (s *gobSpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Path implements Spill.
func (s *gobSpill[T]) Path() string {
	return s.path
}

// Append implements Spill.
func (s *gobSpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendLocked(item)
}

// AppendBatch implements Spill. The batch is encoded under one lock
// acquisition.
func (s *gobSpill[T]) AppendBatch(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if err := s.appendLocked(item); err != nil {
			return err
		}
	}

	return nil
}

func (s *gobSpill[T]) appendLocked(item T) error {
	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode spill item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.length++

	return nil
}

// Get implements Spill. The file is decoded from the start; Get is meant for
// occasional lookups, Range for scans.
func (s *gobSpill[T]) Get(index uint64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	if index >= s.length {
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, s.length)
	}

	var item T

	err := s.decodeUpTo(index, func(_ uint64, decoded T) error {
		item = decoded
		return nil
	})
	if err != nil {
		return zero, err
	}

	return item, nil
}

// Range implements Spill.
func (s *gobSpill[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.length == 0 {
		return nil
	}

	return s.decodeUpTo(s.length-1, fn)
}

// decodeUpTo re-reads the spill file from the beginning and invokes fn for
// every item up to and including the given index. Callers hold the lock.
func (s *gobSpill[T]) decodeUpTo(last uint64, fn func(index uint64, item T) error) error {
	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open spill for read", "path", s.path, "error", err)
		return fmt.Errorf("failed to open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i <= last; i++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode spill item", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements Spill. The backing file is removed.
func (s *gobSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		slog.Error("failed to close spill file", "path", s.path, "error", err)
		return err
	}

	s.file = nil

	if err := os.Remove(s.path); err != nil {
		slog.Warn("failed to remove spill file", "path", s.path, "error", err)
	}

	return nil
}
