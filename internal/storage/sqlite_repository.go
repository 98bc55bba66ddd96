package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal mode: %w", err)
	}
	// One writer at a time; the store serializes mutations anyway.
	db.SetMaxOpenConns(1)
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceAll rewrites the persisted task list in one transaction. The
// previous contents are discarded entirely; positions are taken from the
// slice order.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, tasks []TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, text, completed, due_time, created_at, details, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range tasks {
		if _, err := stmt.ExecContext(ctx,
			in.ID, in.Text, boolInt(in.Completed),
			nullTime(in.DueTime), mustTime(in.CreatedAt), nullString(in.Details), i,
		); err != nil {
			return fmt.Errorf("insert task %s: %w", in.ID, err)
		}
	}
	return tx.Commit()
}

// LoadAll returns the persisted list in position order.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, completed, due_time, created_at, details, position
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TaskRecord, 0)
	for rows.Next() {
		rec, scanErr := scanTaskRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanTaskRecord(s scanner) (TaskRecord, error) {
	var out TaskRecord
	var completed int
	var due sql.NullString
	var created string
	var details sql.NullString
	if err := s.Scan(&out.ID, &out.Text, &completed, &due, &created, &details, &out.Position); err != nil {
		return TaskRecord{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return TaskRecord{}, err
	}
	dueTime, err := parseNullableTime(due)
	if err != nil {
		return TaskRecord{}, err
	}
	out.Completed = completed == 1
	out.DueTime = dueTime
	out.CreatedAt = createdAt
	out.Details = details.String
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
