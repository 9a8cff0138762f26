package postgres

import (
	"context"
	"errors"
	"time"

	"filmorate/proj/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const (
	ErrConflictCode   = "23505"
	ErrForeignKeyCode = "23503"
)

func New(ctx context.Context, storagePath string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	pool.Config().MaxConns = int32(maxConns)
	pool.Config().MaxConnIdleTime = maxConnIdleTime
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return &PostgresDB{Conn: pool}, nil
}

// MapError classifies a driver error into the storage error taxonomy.
func MapError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		switch pgxErr.Code {
		case ErrConflictCode:
			return storage.ErrAlreadyExists
		case ErrForeignKeyCode:
			return storage.ErrReferenceNotFound
		}
		if pgxErr.Code[:2] == "23" {
			return storage.ErrIntegrity
		}
	}
	return err
}
