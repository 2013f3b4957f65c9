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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, master_secret) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, user.Username, user.MasterSecret); err != nil {
		return fmt.Errorf("%w: insert user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT username, master_secret FROM users WHERE username = ?`

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

func (r *SQLiteRepository) UpdateMasterSecret(ctx context.Context, username string, secret []byte) error {
	query := `UPDATE users SET master_secret = ? WHERE username = ?`

	if _, err := r.db.ExecContext(ctx, query, secret, username); err != nil {
		return fmt.Errorf("%w: update user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = ?`

	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("%w: delete user: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
