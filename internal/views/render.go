package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Progress   string
	SearchBar  string
	Body       string
	Overlay    string
	StatusLine string
	StatusErr  bool
	Footer     string
	Width      int
}

type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

var (
	LightTheme = Theme{
		Name:       "light",
		Background: lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#1A1A1A"),
		Muted:      lipgloss.Color("#6C6C6C"),
		Accent:     lipgloss.Color("#1F4FD1"),
	}
	DarkTheme = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#000000"),
		Foreground: lipgloss.Color("#EDEDED"),
		Muted:      lipgloss.Color("#8A8A8A"),
		Accent:     lipgloss.Color("#7AA2F7"),
	}
)

// ThemeByName falls back to the light theme for unknown names.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), DarkTheme.Name) {
		return DarkTheme
	}
	return LightTheme
}

func (t Theme) Toggle() Theme {
	if t.Name == DarkTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func RenderApp(data AppData, theme Theme) string {
	frame := lipgloss.NewStyle().Background(theme.Background).Foreground(theme.Foreground)
	header := frame.Bold(true).Foreground(theme.Accent).Render(data.Header)
	footer := frame.Foreground(theme.Muted).Render(data.Footer)

	status := frame.Render(data.StatusLine)
	if data.StatusErr {
		status = errorStyle.Render(data.StatusLine)
	}

	body := data.Body
	if data.Width > 0 {
		body = panelStyle.BorderForeground(theme.Muted).Width(data.Width).Render(body)
	} else {
		body = panelStyle.BorderForeground(theme.Muted).Render(body)
	}

	lines := []string{header}
	if data.SearchBar != "" {
		lines = append(lines, frame.Render(data.SearchBar))
	}
	lines = append(lines, frame.Render(data.Progress), body)
	if data.Overlay != "" {
		lines = append(lines, panelStyle.BorderForeground(theme.Accent).Render(data.Overlay))
	}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, footer)
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, theme Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, theme.Name)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
