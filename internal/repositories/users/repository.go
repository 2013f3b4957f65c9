// Package users defines the repository contract for vault identities.
package users

import (
	"context"

	"passkeeper/internal/models"
)

// Repository is the credential-store boundary for user records.
//
// GetByUsername returns common.ErrNotFound when no record exists; any
// underlying fault matches common.ErrStoreUnavailable. UpdateMasterSecret
// and Delete are no-ops (not errors) when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateMasterSecret(ctx context.Context, username string, secret []byte) error
	Delete(ctx context.Context, username string) error
}
