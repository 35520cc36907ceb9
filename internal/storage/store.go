package storage

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by a Store when no document
	// has ever been written to it.
	ErrDocumentNotFound = errors.New("user data document not found")
	// ErrNotReady is returned by the facade before Load has completed.
	ErrNotReady = errors.New("storage not ready")
)

// Store is a single persistence backend holding the whole user data
// document as one blob.
type Store interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
	Close() error
}
