package entries

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

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.Entry) error {
	query := `INSERT INTO entries (id, owner_username, service_name, login, encrypted_secret)
	          VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, e.ID, e.Owner, e.Service, e.Login, e.Secret)
	if err != nil {
		return fmt.Errorf("%w: insert entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// GetAllByOwner lists the owner's entries ordered by service name, then by
// id, so duplicate services come back in a stable order.
func (r *SQLiteRepository) GetAllByOwner(ctx context.Context, owner string) ([]models.Entry, error) {
	query := `SELECT id, owner_username, service_name, login, encrypted_secret
	          FROM entries WHERE owner_username = ?
	          ORDER BY service_name, id`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: select entries: %v", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.ID, &item.Owner, &item.Service, &item.Login, &item.Secret); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", common.ErrStoreUnavailable, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %v", common.ErrStoreUnavailable, err)
	}
	return result, nil
}

func (r *SQLiteRepository) FindFirst(ctx context.Context, owner, service string) (*models.Entry, error) {
	query := `SELECT id, owner_username, service_name, login, encrypted_secret
	          FROM entries WHERE owner_username = ? AND service_name = ?
	          ORDER BY service_name, id LIMIT 1`

	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, owner, service).
		Scan(&e.ID, &e.Owner, &e.Service, &e.Login, &e.Secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select entry: %v", common.ErrStoreUnavailable, err)
	}
	return e, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id, login string, secret []byte) error {
	query := `UPDATE entries SET login = ?, encrypted_secret = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, login, secret, id); err != nil {
		return fmt.Errorf("%w: update entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM entries WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteAllByOwner removes every entry scoped to one owner in one call.
// Used for cascading user deletion.
func (r *SQLiteRepository) DeleteAllByOwner(ctx context.Context, owner string) error {
	query := `DELETE FROM entries WHERE owner_username = ?`

	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("%w: delete entries: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
