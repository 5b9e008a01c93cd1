package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.Mode = ModeSearch
	m.searchInput.SetValue(m.Search.Query)
	m.searchInput.CursorEnd()
	cmd := m.searchInput.Focus()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		if err := m.runSearch(m.searchInput.Value()); err != nil {
			m.setError(err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// runSearch replaces the displayed rows with the matches in storage. An
// empty query goes back to the full list.
func (m *Model) runSearch(query string) error {
	if strings.TrimSpace(query) == "" {
		m.clearSearch()
		m.clampCursor()
		m.setStatus("search cleared")
		return nil
	}
	results, err := m.ctrl.Search(m.ctx, query)
	if err != nil {
		return err
	}
	m.Search = SearchState{Active: true, Query: query, Results: results}
	m.Cursor = 0
	m.setStatus(fmt.Sprintf("%d task(s) match %q", len(results), query))
	return nil
}

func (m *Model) clearSearch() {
	m.Search = SearchState{}
	m.searchInput.SetValue("")
}

func (m Model) renderSearchBar() string {
	if m.Mode == ModeSearch {
		return views.RenderSearchBar(m.searchInput.View(), true)
	}
	return views.RenderSearchBar(m.Search.Query, m.Search.Active)
}
