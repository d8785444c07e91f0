package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"conversational-task-assistant/internal/task/repository"
	pkgLog "conversational-task-assistant/pkg/log"

	_ "modernc.org/sqlite"
)

type implRepository struct {
	db  *sql.DB
	l   pkgLog.Logger
	now func() time.Time
}

// New creates a sqlite-backed task and project repository. The schema must exist; see Open.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{
		db:  db,
		l:   l,
		now: time.Now,
	}
}

// Open connects to the database at dsn and bootstraps the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer, and each ":memory:" connection is its own database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}
