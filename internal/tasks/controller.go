// Package tasks owns the in-memory task list and keeps it in step with the
// store: every mutation is persisted before it returns.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

var ErrNotFound = errors.New("tasks: task not found")

type EditMode string

const (
	// EditReplace replaces the whole task with the parsed input line, so
	// metadata and completion are lost unless retyped.
	EditReplace EditMode = "replace"
	// EditPreserve replaces only the description.
	EditPreserve EditMode = "preserve"
)

func (m EditMode) IsValid() bool {
	return m == EditPreserve || m == EditReplace
}

type Controller struct {
	store    storage.Store
	logger   *log.Logger
	editMode EditMode
	items    []model.Task
	newID    func() string
}

type Option func(*Controller)

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithEditMode(mode EditMode) Option {
	return func(c *Controller) {
		if mode.IsValid() {
			c.editMode = mode
		}
	}
}

func NewController(store storage.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		logger:   logging.Discard(),
		editMode: EditReplace,
		items:    make([]model.Task, 0),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) EditMode() EditMode {
	return c.editMode
}

func (c *Controller) Load(ctx context.Context) error {
	loaded, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("load tasks failed", "err", err)
		return fmt.Errorf("load tasks: %w", err)
	}
	for _, task := range loaded {
		if err := task.Validate(); err != nil {
			c.logger.Warn("loaded task has unknown metadata", "id", task.ID, "err", err)
		}
	}
	c.items = loaded
	return nil
}

func (c *Controller) Tasks() []model.Task {
	return slices.Clone(c.items)
}

func (c *Controller) Len() int {
	return len(c.items)
}

func (c *Controller) Get(id string) (model.Task, error) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	return c.items[idx], nil
}

func (c *Controller) IndexOf(id string) int {
	return slices.IndexFunc(c.items, func(t model.Task) bool { return t.ID == id })
}

// Add appends a new task. A blank description is ignored and reported as
// added == false with a nil error.
func (c *Controller) Add(ctx context.Context, description string, priority model.Priority, category model.Category, deadline string) (model.Task, bool, error) {
	desc := model.SanitizeDescription(description)
	if desc == "" {
		return model.Task{}, false, nil
	}
	task := model.Task{
		ID:          c.newID(),
		Description: desc,
		Priority:    priority,
		Category:    category,
		Deadline:    strings.TrimSpace(deadline),
	}
	next := append(slices.Clone(c.items), task)
	if err := c.commit(ctx, next); err != nil {
		return model.Task{}, false, err
	}
	c.logger.Debug("task added", "id", task.ID, "priority", task.Priority, "category", task.Category)
	return task, true, nil
}

// Edit rewrites the task with the given id from user input. Blank input is
// ignored. See EditMode for what survives the edit.
func (c *Controller) Edit(ctx context.Context, id, text string) (bool, error) {
	input := model.SanitizeDescription(text)
	if input == "" {
		return false, nil
	}
	idx := c.IndexOf(id)
	if idx < 0 {
		return false, ErrNotFound
	}
	next := slices.Clone(c.items)
	switch c.editMode {
	case EditReplace:
		replaced := model.ParseLine(input)
		replaced.ID = id
		next[idx] = replaced
	default:
		next[idx].Description = input
	}
	if err := c.commit(ctx, next); err != nil {
		return false, err
	}
	c.logger.Debug("task edited", "id", id, "mode", c.editMode)
	return true, nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	next := slices.Delete(slices.Clone(c.items), idx, idx+1)
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Debug("task deleted", "id", id)
	return nil
}

func (c *Controller) SetDone(ctx context.Context, id string, done bool) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	next := slices.Clone(c.items)
	next[idx].Done = done
	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.logger.Debug("task completion set", "id", id, "done", done)
	return nil
}

// Search reloads the persisted list and keeps tasks whose task line contains
// query, ignoring case. Neither storage nor the in-memory list change.
func (c *Controller) Search(ctx context.Context, query string) ([]model.Task, error) {
	persisted, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("search load failed", "err", err)
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	needle := strings.ToLower(query)
	out := make([]model.Task, 0)
	for i, task := range persisted {
		line := model.FormatLine(task)
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		// Text stores mint fresh ids on every load; reattach the in-memory id
		// when the persisted line still lines up with it.
		if i < len(c.items) && model.FormatLine(c.items[i]) == line {
			task.ID = c.items[i].ID
		}
		out = append(out, task)
	}
	c.logger.Debug("tasks searched", "query", query, "matches", len(out))
	return out, nil
}

func (c *Controller) commit(ctx context.Context, next []model.Task) error {
	if err := c.store.Save(ctx, next); err != nil {
		c.logger.Error("save tasks failed", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	c.items = next
	return nil
}

type Stats struct {
	Completed int
	Total     int
	Percent   int
}

func Summarize(items []model.Task) Stats {
	out := Stats{Total: len(items)}
	for _, task := range items {
		if task.Done {
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.Percent = int(math.Round(100 * float64(out.Completed) / float64(out.Total)))
	}
	return out
}
