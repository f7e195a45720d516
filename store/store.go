package store

import (
	"context"
	"fmt"

	"github.com/vcon-dev/fake-vcons/vcon"
)

var (
	// ErrNotFound is returned when no container exists for the given UUID.
	ErrNotFound = fmt.Errorf("vcon not found")
)

// Store persists vCon containers keyed by UUID.
type Store interface {
	// Save stores (or overwrites) the container under its UUID.
	Save(ctx context.Context, v *vcon.Vcon) error
	// Get returns the container for the UUID or ErrNotFound.
	Get(ctx context.Context, uuid string) (*vcon.Vcon, error)
	// List returns all stored UUIDs ordered by creation timestamp.
	List(ctx context.Context) ([]string, error)
	// Search returns containers whose subject contains the given substring
	// (case insensitive).
	Search(ctx context.Context, subject string) ([]*vcon.Vcon, error)
	// Delete removes the container or returns ErrNotFound.
	Delete(ctx context.Context, uuid string) error
}
