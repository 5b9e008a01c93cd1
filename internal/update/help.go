package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	full := m.helpModel
	full.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: full.View(m.Keys),
		Markdown: views.RenderMarkdown(cheatSheet(), m.Theme),
	})
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeAdd:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "←/→", Action: "cycle priority or category"},
			{Key: "↑/↓", Action: "move deadline by a day"},
			{Key: "enter", Action: "save task"},
			{Key: "esc", Action: "cancel"},
		}
	case ModeEdit:
		return []KeyBinding{
			{Key: "enter", Action: "save changes"},
			{Key: "esc", Action: "cancel"},
		}
	case ModeSearch:
		return []KeyBinding{
			{Key: "enter", Action: "search stored tasks"},
			{Key: "esc", Action: "close search"},
		}
	case ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle done"},
			{Key: "e/enter", Action: "edit selected task"},
			{Key: "d", Action: "delete selected task"},
		}
	}
}

func cheatSheet() string {
	categories := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, string(c))
	}
	return strings.Join([]string{
		"## Commands",
		"",
		"| command | effect |",
		"|---|---|",
		"| `/add TEXT` | add with default priority, category and today's deadline |",
		"| `/edit ROW TEXT` | edit a row |",
		"| `/done ROW`, `/undone ROW` | mark or unmark a row |",
		"| `/delete ROW` | delete a row |",
		"| `/search TEXT`, `/clear` | filter stored tasks, back to all |",
		"| `/theme [dark\\|light]` | switch theme |",
		"",
		"Categories: " + strings.Join(categories, ", "),
	}, "\n")
}
