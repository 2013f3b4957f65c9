package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"passkeeper/internal/common"
	"passkeeper/internal/dbx"
	"passkeeper/internal/models"
)

// PostgresRepository implements Repository against PostgreSQL.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, master_secret) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, user.Username, user.MasterSecret); err != nil {
		return fmt.Errorf("%w: insert user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT username, master_secret FROM users WHERE username = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.MasterSecret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select user: %v", common.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (r *PostgresRepository) UpdateMasterSecret(ctx context.Context, username string, secret []byte) error {
	query := `UPDATE users SET master_secret = $1 WHERE username = $2`

	if _, err := r.db.ExecContext(ctx, query, secret, username); err != nil {
		return fmt.Errorf("%w: update user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = $1`

	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("%w: delete user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
