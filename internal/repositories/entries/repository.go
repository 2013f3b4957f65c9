// Package entries defines the repository contract for credential entries.
package entries

import (
	"context"

	"passkeeper/internal/models"
)

// Repository is the credential-store boundary for entry records.
//
// GetAllByOwner returns an empty slice, never an error, when the owner has
// no entries. FindFirst returns common.ErrNotFound when nothing matches;
// with duplicate service names it returns the first entry in listing order.
// Any underlying fault matches common.ErrStoreUnavailable.
type Repository interface {
	Insert(ctx context.Context, entry *models.Entry) error
	GetAllByOwner(ctx context.Context, owner string) ([]models.Entry, error)
	FindFirst(ctx context.Context, owner, service string) (*models.Entry, error)
	Update(ctx context.Context, id, login string, secret []byte) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAllByOwner(ctx context.Context, owner string) error
}
