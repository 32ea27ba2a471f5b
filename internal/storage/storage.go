// Package storage persists encoded wallet blobs, one blob per login,
// overwritten in full on every save. Two backends exist: plain files and
// sqlite.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports that no blob exists for a login. Callers treat it as a
// normal empty-result case, not a failure.
var ErrNotFound = errors.New("wallet not found")

// BlobStore is a keyed upsert over opaque wallet blobs.
type BlobStore interface {
	Save(ctx context.Context, login string, blob []byte) error
	Load(ctx context.Context, login string) ([]byte, error)
	Close() error
}
