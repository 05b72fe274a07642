// Package store persists final composited images. Artifacts are write-once and
// append-only: there is no update or delete, and names are made unique by the
// identifier generation upstream, not by locking here.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested artifact does not exist.
var ErrNotFound = errors.New("not found")

// Store is the narrow interface the pipeline and handlers need from a blob
// backend. Implementations must support concurrent independent writes.
type Store interface {
	// Put persists data under name. Names are flat; nested paths are invalid.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the bytes stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether name is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// List returns all stored names.
	List(ctx context.Context) ([]string, error)
}

// FinalName builds the deterministic blob name for an artifact identifier.
func FinalName(id string) string {
	return id + "-final.jpg"
}

// IsImageName reports whether a stored name carries an image extension. The
// gallery listing filters on this.
func IsImageName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}

// validName rejects names that would escape a flat namespace.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
