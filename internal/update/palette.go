package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.setStatus("command palette closed")
	case "enter":
		m = m.executePaletteCommand(m.commandInput.Value())
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
	}
	return m
}

func (m *Model) closePalette() {
	m.Mode = ModeList
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand(input string) Model {
	m.closePalette()
	cmd, err := commands.Parse(input)
	if err != nil {
		m.setError(err)
		return m
	}

	rowTask := func(row int) (model.Task, error) {
		items := m.visibleTasks()
		if row < 1 || row > len(items) {
			return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at row %d", row)}
		}
		return items[row-1], nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			deadline := m.now().Format(m.deadlineLayout)
			task, added, err := m.ctrl.Add(m.ctx, a.Description, model.DefaultPriority, model.DefaultCategory, deadline)
			if err != nil {
				return commands.Result{}, err
			}
			if !added {
				return commands.Result{Message: "nothing to add"}, nil
			}
			m.afterMutation()
			m.Cursor = m.ctrl.Len() - 1
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Description)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			task, err := rowTask(e.Row)
			if err != nil {
				return commands.Result{}, err
			}
			changed, err := m.ctrl.Edit(m.ctx, task.ID, e.Text)
			if err != nil {
				return commands.Result{}, err
			}
			if !changed {
				return commands.Result{Message: "nothing to change"}, nil
			}
			m.afterMutation()
			return commands.Result{Message: fmt.Sprintf("edited row %d", e.Row)}, nil
		},
		Done: func(r commands.RowArgs, done bool) (commands.Result, error) {
			task, err := rowTask(r.Row)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.ctrl.SetDone(m.ctx, task.ID, done); err != nil {
				return commands.Result{}, err
			}
			m.afterMutation()
			state := "completed"
			if !done {
				state = "reopened"
			}
			return commands.Result{Message: fmt.Sprintf("%s row %d", state, r.Row)}, nil
		},
		Delete: func(r commands.RowArgs) (commands.Result, error) {
			task, err := rowTask(r.Row)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.ctrl.Delete(m.ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			m.afterMutation()
			return commands.Result{Message: fmt.Sprintf("deleted row %d", r.Row)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			if err := m.runSearch(s.Query); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Clear: func() (commands.Result, error) {
			m.clearSearch()
			m.clampCursor()
			return commands.Result{Message: "search cleared"}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			if t.Name == "" {
				m.Theme = m.Theme.Toggle()
			} else {
				m.Theme = views.ThemeByName(t.Name)
			}
			return commands.Result{Message: fmt.Sprintf("theme: %s", m.Theme.Name)}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m
	}
	m.setStatus(strings.TrimSpace(res.Message))
	return m
}
