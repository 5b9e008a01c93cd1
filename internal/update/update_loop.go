package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/tasks"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeAdd:
			return m.handleAddKey(typed)
		case ModeEdit:
			return m.handleEditKey(typed)
		case ModeSearch:
			return m.handleSearchKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed), nil
		default:
			return m.handleListKey(typed)
		}
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		if w := typed.Width - 8; w > 10 {
			m.progressBar.Width = w
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Add):
		return m.openAddForm()
	case key.Matches(msg, m.Keys.Edit):
		return m.openEditForm()
	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.Keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.Keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.Keys.Clear):
		if m.Search.Active {
			m.clearSearch()
			m.setStatus("search cleared")
		}
	case key.Matches(msg, m.Keys.Copy):
		m.copySelected()
	case key.Matches(msg, m.Keys.Theme):
		m.Theme = m.Theme.Toggle()
		m.setStatus(fmt.Sprintf("theme: %s", m.Theme.Name))
	case key.Matches(msg, m.Keys.Command):
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		cmd := m.commandInput.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.setDone(task.ID, !task.Done)
}

func (m *Model) setDone(id string, done bool) bool {
	if err := m.ctrl.SetDone(m.ctx, id, done); err != nil {
		m.setError(err)
		return false
	}
	m.afterMutation()
	if done {
		m.setStatus("task completed")
	} else {
		m.setStatus("task reopened")
	}
	return true
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.deleteTask(task.ID)
}

func (m *Model) deleteTask(id string) bool {
	if err := m.ctrl.Delete(m.ctx, id); err != nil {
		m.setError(err)
		return false
	}
	m.afterMutation()
	m.setStatus("task deleted")
	return true
}

func (m *Model) copySelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if err := m.writeClipboard(lineOf(task)); err != nil {
		m.setError(fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	m.setStatus("task copied to clipboard")
}

// afterMutation returns the display to the full in-memory list, as every
// mutation redraws from it.
func (m *Model) afterMutation() {
	m.clearSearch()
	m.clampCursor()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	items := m.visibleTasks()
	stats := tasks.Summarize(items)

	rows := make([]views.RowData, 0, len(items))
	for i, task := range items {
		rows = append(rows, views.RowData{
			Number:   i + 1,
			Selected: i == m.Cursor,
			Done:     task.Done,
			Text:     displayText(task),
			Priority: task.Priority,
		})
	}
	query := ""
	if m.Search.Active {
		query = m.Search.Query
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("todo | %s | theme: %s", m.StoreLabel, m.Theme.Name),
		Progress: views.RenderProgress(views.ProgressData{
			Completed: stats.Completed,
			Total:     stats.Total,
			Percent:   stats.Percent,
			BarView:   m.progressBar.ViewAs(float64(stats.Percent) / 100),
		}),
		SearchBar:  m.renderSearchBar(),
		Body:       views.RenderListPanel(views.ListPanelData{Rows: rows, SearchQuery: query}, m.Theme),
		Overlay:    m.renderOverlay(),
		StatusLine: status,
		StatusErr:  m.Status.IsError,
		Footer:     m.helpModel.View(m.Keys),
		Width:      m.bodyWidth(),
	}, m.Theme)
}

func (m Model) renderOverlay() string {
	parts := make([]string, 0, 2)
	switch m.Mode {
	case ModeAdd:
		parts = append(parts, m.renderAddForm())
	case ModeEdit:
		parts = append(parts, m.renderEditForm())
	case ModePalette:
		parts = append(parts, views.RenderCommandPalette(true, m.commandInput.View()))
	}
	if m.HelpVisible {
		parts = append(parts, m.renderHelpView())
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) bodyWidth() int {
	if m.width <= 4 {
		return 0
	}
	return m.width - 4
}
