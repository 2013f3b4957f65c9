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

// PostgresRepository implements Repository against PostgreSQL.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, e *models.Entry) error {
	query := `INSERT INTO entries (id, owner_username, service_name, login, encrypted_secret)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, e.ID, e.Owner, e.Service, e.Login, e.Secret)
	if err != nil {
		return fmt.Errorf("%w: insert entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) GetAllByOwner(ctx context.Context, owner string) ([]models.Entry, error) {
	query := `SELECT id, owner_username, service_name, login, encrypted_secret
	          FROM entries WHERE owner_username = $1
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

func (r *PostgresRepository) FindFirst(ctx context.Context, owner, service string) (*models.Entry, error) {
	query := `SELECT id, owner_username, service_name, login, encrypted_secret
	          FROM entries WHERE owner_username = $1 AND service_name = $2
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

func (r *PostgresRepository) Update(ctx context.Context, id, login string, secret []byte) error {
	query := `UPDATE entries SET login = $1, encrypted_secret = $2 WHERE id = $3`

	if _, err := r.db.ExecContext(ctx, query, login, secret, id); err != nil {
		return fmt.Errorf("%w: update entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM entries WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete entry: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAllByOwner(ctx context.Context, owner string) error {
	query := `DELETE FROM entries WHERE owner_username = $1`

	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("%w: delete entries: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}
