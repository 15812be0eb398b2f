package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	_ "modernc.org/sqlite"
)

const (
	getValueSQL    = `SELECT value FROM kv_entries WHERE key = ?`
	upsertValueSQL = `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	deleteValueSQL = `DELETE FROM kv_entries WHERE key = ?`
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: opens a fresh database, so keep one.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getValueSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", store.WrapIO("get", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return store.WrapIO("set", key, upsert(ctx, s.db, key, value))
}

func (s *Store) RemoveAll(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, deleteValueSQL, k); err != nil {
			errs = append(errs, store.WrapIO("remove", k, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) WriteBatch(ctx context.Context, b store.Batch) error {
	if b.Empty() {
		return nil
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for k, v := range b.Set {
			if err := upsert(ctx, tx, k, v); err != nil {
				return err
			}
		}
		for _, k := range b.Remove {
			if _, err := tx.ExecContext(ctx, deleteValueSQL, k); err != nil {
				return err
			}
		}
		return nil
	})
	return store.WrapIO("batch", "", err)
}

// withTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func upsert(ctx context.Context, e execer, key, value string) error {
	_, err := e.ExecContext(ctx, upsertValueSQL, key, value)
	return err
}
