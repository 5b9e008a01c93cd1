package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
)

// Store persists the ordered task list as a whole. Save replaces everything
// previously stored.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
	Close() error
}

const (
	KindText   = "text"
	KindSQLite = "sqlite"
)

// Open returns the store implementation named by kind.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", KindText:
		return NewTextStore(path)
	case KindSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("storage: unknown store kind %q", kind)
	}
}
