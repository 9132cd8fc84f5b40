package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PostgresSessionRepo struct {
	DB *sql.DB
}

func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{DB: db}
}

func (r *PostgresSessionRepo) Get(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `
		SELECT value
		FROM admin_session
		WHERE session_id=$1 AND key=$2
	`, sessionID, key).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *PostgresSessionRepo) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admin_session (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, key)
		DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at
	`, sessionID, key, value, time.Now().UTC())
	return err
}

func (r *PostgresSessionRepo) Delete(ctx context.Context, sessionID, key string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM admin_session
		WHERE session_id=$1 AND key=$2
	`, sessionID, key)
	return err
}
