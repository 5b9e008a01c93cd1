package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/tasks"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	m.Mode = ModeAdd
	m.resetAddForm()
	m.descInput.SetValue("")
	m.deadlineInput.SetValue(m.now().Format(m.deadlineLayout))
	m.deadlineInput.Blur()
	cmd := m.descInput.Focus()
	return m, cmd
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAddForm()
		m.setStatus("add cancelled")
		return m, nil
	case "enter":
		m.submitAddForm()
		return m, nil
	case "tab":
		return m.focusAddField((m.Add.Focus + 1) % fieldCount)
	case "shift+tab":
		return m.focusAddField((m.Add.Focus + fieldCount - 1) % fieldCount)
	}

	switch m.Add.Focus {
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			m.Add.Priority = model.Cycle(model.Priorities, m.Add.Priority, -1)
		case "right", "l", " ":
			m.Add.Priority = model.Cycle(model.Priorities, m.Add.Priority, 1)
		}
		return m, nil
	case fieldCategory:
		switch msg.String() {
		case "left", "h":
			m.Add.Category = model.Cycle(model.Categories, m.Add.Category, -1)
		case "right", "l", " ":
			m.Add.Category = model.Cycle(model.Categories, m.Add.Category, 1)
		}
		return m, nil
	case fieldDeadline:
		switch msg.String() {
		case "up", "+":
			m.shiftDeadline(1)
			return m, nil
		case "down", "-":
			m.shiftDeadline(-1)
			return m, nil
		}
		var cmd tea.Cmd
		m.deadlineInput, cmd = m.deadlineInput.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd
	}
}

func (m Model) focusAddField(field int) (tea.Model, tea.Cmd) {
	m.Add.Focus = field
	m.descInput.Blur()
	m.deadlineInput.Blur()
	switch field {
	case fieldDescription:
		cmd := m.descInput.Focus()
		return m, cmd
	case fieldDeadline:
		cmd := m.deadlineInput.Focus()
		return m, cmd
	}
	return m, nil
}

// shiftDeadline moves the deadline by days when it parses with the configured
// layout. Free-form deadlines are left alone.
func (m *Model) shiftDeadline(days int) {
	current, err := time.Parse(m.deadlineLayout, m.deadlineInput.Value())
	if err != nil {
		return
	}
	m.deadlineInput.SetValue(current.AddDate(0, 0, days).Format(m.deadlineLayout))
	m.deadlineInput.CursorEnd()
}

func (m *Model) submitAddForm() {
	_, added, err := m.ctrl.Add(m.ctx, m.descInput.Value(), m.Add.Priority, m.Add.Category, m.deadlineInput.Value())
	m.closeAddForm()
	if err != nil {
		m.setError(err)
		return
	}
	if !added {
		return
	}
	m.afterMutation()
	m.Cursor = m.ctrl.Len() - 1
	m.setStatus("task added")
}

func (m *Model) closeAddForm() {
	m.Mode = ModeList
	m.descInput.Blur()
	m.deadlineInput.Blur()
}

func (m Model) renderAddForm() string {
	deadline := m.deadlineInput.Value()
	if m.Add.Focus == fieldDeadline {
		deadline = m.deadlineInput.View()
	}
	desc := m.descInput.Value()
	if m.Add.Focus == fieldDescription {
		desc = m.descInput.View()
	}
	return views.RenderAddForm(views.AddFormData{
		Focus:       m.Add.Focus,
		Description: desc,
		Priority:    m.Add.Priority,
		Category:    m.Add.Category,
		Deadline:    deadline,
	})
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	m.Mode = ModeEdit
	m.EditID = task.ID
	m.editInput.SetValue(editSeed(task, m.ctrl.EditMode()))
	m.editInput.CursorEnd()
	cmd := m.editInput.Focus()
	return m, cmd
}

// editSeed is the text the edit form opens with. Replace mode shows the task
// line without its completion marker, since the input replaces all of it.
func editSeed(task model.Task, mode tasks.EditMode) string {
	if mode == tasks.EditPreserve {
		return task.Description
	}
	return model.StripMarker(lineOf(task))
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEditForm()
		m.setStatus("edit cancelled")
		return m, nil
	case "enter":
		m.submitEditForm()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *Model) submitEditForm() {
	id := m.EditID
	changed, err := m.ctrl.Edit(m.ctx, id, m.editInput.Value())
	m.closeEditForm()
	if err != nil {
		m.setError(err)
		return
	}
	if !changed {
		return
	}
	m.afterMutation()
	task, err := m.ctrl.Get(id)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("task updated: " + task.Description)
}

func (m *Model) closeEditForm() {
	m.Mode = ModeList
	m.EditID = ""
	m.editInput.Blur()
}

func (m Model) renderEditForm() string {
	row := 0
	items := m.visibleTasks()
	for i, task := range items {
		if task.ID == m.EditID {
			row = i + 1
			break
		}
	}
	return views.RenderEditForm(views.EditFormData{
		Row:   row,
		Input: m.editInput.View(),
		Mode:  string(m.ctrl.EditMode()),
	})
}
