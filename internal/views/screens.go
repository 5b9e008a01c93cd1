package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/todo/internal/model"
)

const TrashGlyph = "🗑"

var (
	colorHigh   = lipgloss.Color("#FF0000")
	colorMedium = lipgloss.Color("#FFA500")
	colorLow    = lipgloss.Color("#008000")
)

// PriorityColor maps a priority to its row color. Unknown or empty
// priorities use the terminal default.
func PriorityColor(p model.Priority) lipgloss.TerminalColor {
	switch p {
	case model.PriorityHigh:
		return colorHigh
	case model.PriorityMedium:
		return colorMedium
	case model.PriorityLow:
		return colorLow
	default:
		return lipgloss.NoColor{}
	}
}

// ColorForLine applies the same mapping to raw task line text.
func ColorForLine(line string) lipgloss.TerminalColor {
	switch {
	case strings.Contains(line, "Priority: High"):
		return colorHigh
	case strings.Contains(line, "Priority: Medium"):
		return colorMedium
	case strings.Contains(line, "Priority: Low"):
		return colorLow
	default:
		return lipgloss.NoColor{}
	}
}

type RowData struct {
	Number   int
	Selected bool
	Done     bool
	Text     string
	Priority model.Priority
}

type ListPanelData struct {
	Rows        []RowData
	SearchQuery string
}

type ProgressData struct {
	Completed int
	Total     int
	Percent   int
	BarView   string
}

type AddFormData struct {
	Focus       int
	Description string
	Priority    model.Priority
	Category    model.Category
	Deadline    string
}

type EditFormData struct {
	Row   int
	Input string
	Mode  string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Markdown string
}

// RowColor is the priority color of a row. Rows without a known priority fall
// back to the priority named in their text, so a line written by hand still
// gets its color.
func RowColor(row RowData) lipgloss.TerminalColor {
	if c := PriorityColor(row.Priority); c != (lipgloss.NoColor{}) {
		return c
	}
	return ColorForLine(row.Text)
}

func RenderRow(row RowData, theme Theme) string {
	box := "[ ]"
	if row.Done {
		box = "[x]"
	}
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	text := lipgloss.NewStyle().Foreground(RowColor(row))
	if row.Done {
		text = text.Strikethrough(true)
	}
	if row.Selected {
		text = text.Bold(true).Underline(true)
	}
	trash := lipgloss.NewStyle().Foreground(theme.Muted).Render(TrashGlyph)
	return fmt.Sprintf("%s %2d %s %s %s", cursor, row.Number, box, text.Render(row.Text), trash)
}

func RenderListPanel(data ListPanelData, theme Theme) string {
	var b strings.Builder
	if data.SearchQuery != "" {
		b.WriteString(fmt.Sprintf("search results for %q (esc to clear):\n", data.SearchQuery))
	}
	if len(data.Rows) == 0 {
		if data.SearchQuery != "" {
			b.WriteString("(no matching tasks)")
		} else {
			b.WriteString("(no tasks, press a to add one)")
		}
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(RenderRow(row, theme))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderProgress(data ProgressData) string {
	label := fmt.Sprintf("Progress: %d/%d tasks completed", data.Completed, data.Total)
	if data.BarView == "" {
		return fmt.Sprintf("%s (%d%%)", label, data.Percent)
	}
	return fmt.Sprintf("%s\n%s", data.BarView, label)
}

func RenderAddForm(data AddFormData) string {
	fields := []struct {
		label string
		value string
		hint  string
	}{
		{"Task Description", data.Description, ""},
		{"Priority", string(data.Priority), "←/→"},
		{"Category", string(data.Category), "←/→"},
		{"Deadline", data.Deadline, "↑/↓ day"},
	}
	var b strings.Builder
	b.WriteString("Add Task\n")
	for i, f := range fields {
		cursor := " "
		if i == data.Focus {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-16s %s", cursor, f.label+":", f.value))
		if f.hint != "" && i == data.Focus {
			b.WriteString("  (" + f.hint + ")")
		}
		b.WriteString("\n")
	}
	b.WriteString("[tab] next field  [enter] save task  [esc] cancel")
	return b.String()
}

func RenderEditForm(data EditFormData) string {
	return fmt.Sprintf("Edit Task %d (%s)\n%s\n[enter] save changes  [esc] cancel", data.Row, data.Mode, data.Input)
}

func RenderSearchBar(input string, active bool) string {
	if !active {
		return ""
	}
	return "search: " + input
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command: " + input
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.Markdown != "" {
		b.WriteString("\n\n" + data.Markdown)
	}
	return b.String()
}
