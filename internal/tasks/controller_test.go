package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

type memoryStore struct {
	saved   []model.Task
	saves   int
	failErr error
}

func (s *memoryStore) Load(context.Context) ([]model.Task, error) {
	return append([]model.Task(nil), s.saved...), nil
}

func (s *memoryStore) Save(_ context.Context, items []model.Task) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.saves++
	s.saved = append([]model.Task(nil), items...)
	return nil
}

func (s *memoryStore) Close() error { return nil }

func setupTextController(t *testing.T, opts ...Option) (*Controller, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store, err := storage.NewTextStore(path)
	if err != nil {
		t.Fatalf("new text store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	c := NewController(store, opts...)
	if err := c.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return c, path
}

func fileLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read %s: %v", path, err)
	}
	trimmed := strings.TrimSuffix(string(raw), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func assertFileMatchesMemory(t *testing.T, c *Controller, path string) {
	t.Helper()
	lines := fileLines(t, path)
	items := c.Tasks()
	if len(lines) != len(items) {
		t.Fatalf("file has %d lines, memory has %d tasks", len(lines), len(items))
	}
	for i, task := range items {
		if lines[i] != model.FormatLine(task) {
			t.Fatalf("line %d = %q, want %q", i, lines[i], model.FormatLine(task))
		}
	}
}

func TestAddToggleDeleteScenario(t *testing.T) {
	c, path := setupTextController(t)
	ctx := t.Context()

	task, added, err := c.Add(ctx, "Buy milk", model.PriorityHigh, model.CategoryShopping, "2024-01-01")
	if err != nil || !added {
		t.Fatalf("add: added=%v err=%v", added, err)
	}
	lines := fileLines(t, path)
	if len(lines) != 1 || lines[0] != "Buy milk (Priority: High, Category: Shopping, Deadline: 2024-01-01)" {
		t.Fatalf("unexpected file after add: %q", lines)
	}

	if err := c.SetDone(ctx, task.ID, true); err != nil {
		t.Fatalf("set done: %v", err)
	}
	lines = fileLines(t, path)
	if len(lines) != 1 || lines[0] != "[DONE] Buy milk (Priority: High, Category: Shopping, Deadline: 2024-01-01)" {
		t.Fatalf("unexpected file after done: %q", lines)
	}

	if err := c.SetDone(ctx, task.ID, false); err != nil {
		t.Fatalf("set undone: %v", err)
	}
	if lines = fileLines(t, path); lines[0] != "Buy milk (Priority: High, Category: Shopping, Deadline: 2024-01-01)" {
		t.Fatalf("expected marker stripped, got %q", lines[0])
	}

	if err := c.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if lines = fileLines(t, path); len(lines) != 0 {
		t.Fatalf("expected empty file after delete, got %q", lines)
	}
}

func TestFileMatchesMemoryAfterEveryOperation(t *testing.T) {
	c, path := setupTextController(t)
	ctx := t.Context()

	ids := make([]string, 0)
	for i := 0; i < 5; i++ {
		task, _, err := c.Add(ctx, fmt.Sprintf("task %d", i), model.PriorityLow, model.CategoryHome, "2026-01-0"+fmt.Sprint(i+1))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		ids = append(ids, task.ID)
		assertFileMatchesMemory(t, c, path)
	}
	for _, id := range []string{ids[2], ids[0], ids[4]} {
		if err := c.Delete(ctx, id); err != nil {
			t.Fatalf("delete %s: %v", id, err)
		}
		assertFileMatchesMemory(t, c, path)
	}
	items := c.Tasks()
	if len(items) != 2 || items[0].Description != "task 1" || items[1].Description != "task 3" {
		t.Fatalf("unexpected remaining order: %#v", items)
	}
}

func TestAddBlankDescriptionIsNoop(t *testing.T) {
	store := &memoryStore{}
	c := NewController(store)
	for _, in := range []string{"", "   ", "\n\t"} {
		_, added, err := c.Add(t.Context(), in, model.PriorityMedium, model.CategoryWork, "2026-01-01")
		if err != nil || added {
			t.Fatalf("add %q: added=%v err=%v", in, added, err)
		}
	}
	if store.saves != 0 || c.Len() != 0 {
		t.Fatalf("expected no saves, got %d saves and %d tasks", store.saves, c.Len())
	}
}

func TestAddAllowsDuplicates(t *testing.T) {
	c := NewController(&memoryStore{})
	a, _, _ := c.Add(t.Context(), "same", model.PriorityLow, model.CategoryWork, "d")
	b, _, _ := c.Add(t.Context(), "same", model.PriorityLow, model.CategoryWork, "d")
	if c.Len() != 2 || a.ID == b.ID {
		t.Fatalf("expected two distinct duplicates, got %#v", c.Tasks())
	}
}

func TestEditPreserveKeepsMetadata(t *testing.T) {
	c, path := setupTextController(t, WithEditMode(EditPreserve))
	ctx := t.Context()
	task, _, _ := c.Add(ctx, "Buy milk", model.PriorityHigh, model.CategoryShopping, "2024-01-01")
	if err := c.SetDone(ctx, task.ID, true); err != nil {
		t.Fatalf("set done: %v", err)
	}

	changed, err := c.Edit(ctx, task.ID, "Buy oat milk")
	if err != nil || !changed {
		t.Fatalf("edit: changed=%v err=%v", changed, err)
	}
	lines := fileLines(t, path)
	if lines[0] != "[DONE] Buy oat milk (Priority: High, Category: Shopping, Deadline: 2024-01-01)" {
		t.Fatalf("unexpected line after preserve edit: %q", lines[0])
	}
}

func TestEditReplaceDropsMetadataAndMarker(t *testing.T) {
	c, path := setupTextController(t)
	ctx := t.Context()
	first, _, _ := c.Add(ctx, "Buy milk", model.PriorityHigh, model.CategoryShopping, "2024-01-01")
	second, _, _ := c.Add(ctx, "Walk dog", model.PriorityLow, model.CategoryPersonal, "2024-01-02")
	if err := c.SetDone(ctx, first.ID, true); err != nil {
		t.Fatalf("set done: %v", err)
	}

	changed, err := c.Edit(ctx, first.ID, "  Buy bread  ")
	if err != nil || !changed {
		t.Fatalf("edit: changed=%v err=%v", changed, err)
	}
	lines := fileLines(t, path)
	if lines[0] != "Buy bread" {
		t.Fatalf("expected whole line replaced, got %q", lines[0])
	}
	if lines[1] != "Walk dog (Priority: Low, Category: Personal, Deadline: 2024-01-02)" {
		t.Fatalf("expected other line untouched, got %q", lines[1])
	}
	got, err := c.Get(first.ID)
	if err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if got.Done || got.HasMetadata() {
		t.Fatalf("expected metadata and completion lost, got %#v", got)
	}
	if c.IndexOf(second.ID) != 1 {
		t.Fatal("expected second task to keep its position")
	}
}

func TestEditBlankIsNoopAndUnknownIDFails(t *testing.T) {
	store := &memoryStore{}
	c := NewController(store)
	task, _, _ := c.Add(t.Context(), "keep me", model.PriorityLow, model.CategoryWork, "d")
	saves := store.saves

	changed, err := c.Edit(t.Context(), task.ID, "   ")
	if err != nil || changed || store.saves != saves {
		t.Fatalf("blank edit: changed=%v err=%v saves=%d", changed, err, store.saves)
	}
	if _, err := c.Edit(t.Context(), "missing", "text"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from edit, got %v", err)
	}
	if err := c.Delete(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from delete, got %v", err)
	}
	if err := c.SetDone(t.Context(), "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from set done, got %v", err)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	store := &memoryStore{}
	c := NewController(store)
	task, _, _ := c.Add(t.Context(), "stable", model.PriorityLow, model.CategoryWork, "d")

	boom := errors.New("disk full")
	store.failErr = boom
	if _, _, err := c.Add(t.Context(), "lost", model.PriorityLow, model.CategoryWork, "d"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if err := c.SetDone(t.Context(), task.ID, true); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if err := c.Delete(t.Context(), task.ID); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	items := c.Tasks()
	if len(items) != 1 || items[0].Done || items[0].Description != "stable" {
		t.Fatalf("expected in-memory list rolled back, got %#v", items)
	}
}

func TestSearchFiltersPersistedWithoutMutation(t *testing.T) {
	c, path := setupTextController(t)
	ctx := t.Context()
	if _, _, err := c.Add(ctx, "Buy milk", model.PriorityHigh, model.CategoryShopping, "2024-01-01"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := c.Add(ctx, "Walk dog", model.PriorityLow, model.CategoryPersonal, "2024-01-02"); err != nil {
		t.Fatalf("add: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	got, err := c.Search(ctx, "MILK")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || model.FormatLine(got[0]) != "Buy milk (Priority: High, Category: Shopping, Deadline: 2024-01-01)" {
		t.Fatalf("unexpected search result: %#v", got)
	}
	if got[0].ID != c.Tasks()[0].ID {
		t.Fatalf("expected in-memory id reattached, got %q", got[0].ID)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("search modified the file: %q -> %q", before, after)
	}
	if c.Len() != 2 {
		t.Fatalf("search changed the in-memory list: %d", c.Len())
	}

	byCategory, err := c.Search(ctx, "category: personal")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Description != "Walk dog" {
		t.Fatalf("expected metadata to be searchable, got %#v", byCategory)
	}
}

func TestSearchReadsStorageNotMemory(t *testing.T) {
	c, path := setupTextController(t)
	if _, _, err := c.Add(t.Context(), "in memory", model.PriorityLow, model.CategoryWork, "d"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := os.WriteFile(path, []byte("written elsewhere\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := c.Search(t.Context(), "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Description != "written elsewhere" {
		t.Fatalf("expected persisted content, got %#v", got)
	}
	if got[0].ID == c.Tasks()[0].ID {
		t.Fatal("expected a foreign line to keep its own id")
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s != (Stats{}) {
		t.Fatalf("expected zero stats for empty list, got %+v", s)
	}
	items := []model.Task{{Done: true}, {}, {}}
	s := Summarize(items)
	if s.Completed != 1 || s.Total != 3 || s.Percent != 33 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	items = append(items, model.Task{Done: true})
	if s := Summarize(items[1:]); s.Percent != 33 {
		t.Fatalf("unexpected percent: %+v", s)
	}
	if s := Summarize([]model.Task{{Done: true}, {Done: true}, {}}); s.Percent != 67 {
		t.Fatalf("expected rounding up to 67, got %+v", s)
	}
}

func TestNewControllerOptions(t *testing.T) {
	c := NewController(&memoryStore{}, WithEditMode(EditMode("bogus")), WithLogger(nil))
	if c.EditMode() != EditReplace {
		t.Fatalf("expected default replace mode, got %q", c.EditMode())
	}
	c = NewController(&memoryStore{}, WithEditMode(EditPreserve))
	if c.EditMode() != EditPreserve {
		t.Fatalf("expected preserve mode, got %q", c.EditMode())
	}
}

func TestDefaultEditReplacesWholeLine(t *testing.T) {
	c, path := setupTextController(t)
	ctx := t.Context()
	task, _, _ := c.Add(ctx, "Buy milk", model.PriorityHigh, model.CategoryShopping, "2024-01-01")
	if err := c.SetDone(ctx, task.ID, true); err != nil {
		t.Fatalf("set done: %v", err)
	}
	if _, err := c.Edit(ctx, task.ID, "Buy oat milk"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	lines := fileLines(t, path)
	if len(lines) != 1 || lines[0] != "Buy oat milk" {
		t.Fatalf("expected marker and metadata dropped, got %q", lines)
	}
}

func TestLoadWarnsOnUnknownMetadataOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	store := &memoryStore{saved: []model.Task{
		{ID: "a", Description: "ok", Priority: model.PriorityLow, Category: model.CategoryWork, Deadline: "d"},
		{ID: "b", Description: "odd", Priority: "Urgent", Category: model.CategoryWork, Deadline: "d"},
	}}
	c := NewController(store, WithLogger(logger))
	if err := c.Load(t.Context()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected both tasks kept, got %d", c.Len())
	}
	out := buf.String()
	if strings.Count(out, "unknown metadata") != 1 || !strings.Contains(out, "Urgent") {
		t.Fatalf("expected one warning for the unknown priority, got:\n%s", out)
	}
	if strings.Contains(out, "tasks loaded") {
		t.Fatalf("load summary belongs to the caller, got:\n%s", out)
	}
}
