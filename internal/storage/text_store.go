package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sandeepkv93/todo/internal/model"
)

const DefaultTextFile = "tasks.txt"

// TextStore keeps one task line per line in a plain text file.
type TextStore struct {
	path string
	lock *flock.Flock
}

func NewTextStore(path string) (*TextStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: empty text file path")
	}
	return &TextStore{
		path: trimmed,
		lock: flock.New(trimmed + ".lock"),
	}, nil
}

func (s *TextStore) Path() string {
	return s.path
}

func (s *TextStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	out := make([]model.Task, 0)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		task := model.ParseLine(line)
		task.ID = uuid.NewString()
		out = append(out, task)
	}
	return out, nil
}

func (s *TextStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create tasks dir: %w", err)
		}
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock tasks file: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	var buf bytes.Buffer
	for _, task := range tasks {
		task.Description = model.SanitizeDescription(task.Description)
		buf.WriteString(model.FormatLine(task))
		buf.WriteByte('\n')
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

func (s *TextStore) Close() error {
	return s.lock.Close()
}
