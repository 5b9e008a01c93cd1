package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todo/internal/model"
)

const DefaultSQLiteFile = "tasks.db"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, position, description, priority, category, deadline, done
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		row, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan task: %w", scanErr)
		}
		out = append(out, row.task())
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, description, priority, category, deadline, done)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		row := rowFromTask(i, task)
		if _, err := stmt.ExecContext(ctx, row.ID, row.Position, row.Description, row.Priority, row.Category, row.Deadline, boolInt(row.Done)); err != nil {
			return fmt.Errorf("insert task %s: %w", row.ID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (taskRow, error) {
	var out taskRow
	var done int
	if err := s.Scan(&out.ID, &out.Position, &out.Description, &out.Priority, &out.Category, &out.Deadline, &done); err != nil {
		return taskRow{}, err
	}
	out.Done = done == 1
	return out, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
