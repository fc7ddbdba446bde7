package psql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "koistore/internal/database"
	"koistore/internal/models"
	"koistore/pkg/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const foreignKeyViolation = "23503"

type Storage struct {
	log *slog.Logger
	db  *sqlx.DB
}

func New(log *slog.Logger, connStr string) (*Storage, error) {
	const op = "database.psql.New"
	log = log.With("op", op)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Error("Error connect to database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("Error setting migration dialect", sl.Err(err))
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		log.Error("Error applying migrations", sl.Err(err))
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		log: log,
		db:  db,
	}, nil
}

func NewWithParams(log *slog.Logger, db *sqlx.DB) *Storage {
	return &Storage{
		log: log,
		db:  db,
	}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) CreateSession(ctx context.Context) (string, error) {
	const op = "database.psql.CreateSession"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id string
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO session (id)
		VALUES ($1)
		RETURNING id;
	`, uuid.NewString()).Scan(&id)
	if err != nil {
		log.Error("Error creating session", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) DeleteSession(ctx context.Context, sessionId string) error {
	const op = "database.psql.DeleteSession"
	log := s.log.With("op", op, "session", sessionId)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM session
		WHERE id=$1;
	`, sessionId)
	if err != nil {
		log.Error("Failed to delete session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Session doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

// GetEntry returns the stored value of key. A key that was never written
// yields an empty entry with revision 0; an unknown session is ErrNotFound.
func (s *Storage) GetEntry(ctx context.Context, sessionId, key string) (models.SessionEntry, error) {
	const op = "database.psql.GetEntry"
	log := s.log.With("op", op, "session", sessionId, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.SessionEntry{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		id       string
		value    sql.NullString
		revision sql.NullInt64
	)
	err := s.db.QueryRowxContext(ctx, `
		SELECT s.id, e.value, e.revision FROM session AS s
		LEFT JOIN session_entry AS e
		ON e.session_id = s.id AND e.key = $2
		WHERE s.id=$1;
	`, sessionId, key).Scan(&id, &value, &revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Session doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.SessionEntry{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to read session entry", sl.Err(err))
		return models.SessionEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	if !value.Valid {
		return models.SessionEntry{}, nil
	}

	return models.SessionEntry{
		Value:    []byte(value.String),
		Revision: revision.Int64,
	}, nil
}

// PutEntry writes value only if the stored revision still equals
// expectedRevision, and returns the new revision. A lost race is ErrConflict.
func (s *Storage) PutEntry(ctx context.Context, sessionId, key string, value []byte, expectedRevision int64) (int64, error) {
	const op = "database.psql.PutEntry"
	log := s.log.With("op", op, "session", sessionId, "key", key)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		row *sqlx.Row
		rev int64
	)
	if expectedRevision == 0 {
		row = s.db.QueryRowxContext(ctx, `
			INSERT INTO session_entry (session_id, key, value, revision)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (session_id, key) DO NOTHING
			RETURNING revision;
		`, sessionId, key, string(value))
	} else {
		row = s.db.QueryRowxContext(ctx, `
			UPDATE session_entry
			SET value=$3, revision=revision+1, updated_at=NOW()
			WHERE session_id=$1 AND key=$2 AND revision=$4
			RETURNING revision;
		`, sessionId, key, string(value), expectedRevision)
	}

	if err := row.Scan(&rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Entry changed concurrently", slog.Int64("expected_revision", expectedRevision))
			return 0, fmt.Errorf("%s: %w", op, databaseerrors.ErrConflict)
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			log.Warn("Session doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return 0, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to write session entry", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return rev, nil
}

func (s *Storage) DeleteEntries(ctx context.Context, sessionId string, keys ...string) error {
	const op = "database.psql.DeleteEntries"
	log := s.log.With("op", op, "session", sessionId)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM session_entry
		WHERE session_id=$1 AND key = ANY($2);
	`, sessionId, pq.Array(keys)); err != nil {
		log.Error("Failed to delete session entries", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
