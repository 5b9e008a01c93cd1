package storage

import "github.com/sandeepkv93/todo/internal/model"

type taskRow struct {
	ID          string
	Position    int
	Description string
	Priority    string
	Category    string
	Deadline    string
	Done        bool
}

func rowFromTask(position int, t model.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		Position:    position,
		Description: model.SanitizeDescription(t.Description),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Deadline:    t.Deadline,
		Done:        t.Done,
	}
}

func (r taskRow) task() model.Task {
	return model.Task{
		ID:          r.ID,
		Description: r.Description,
		Priority:    model.Priority(r.Priority),
		Category:    model.Category(r.Category),
		Deadline:    r.Deadline,
		Done:        r.Done,
	}
}
