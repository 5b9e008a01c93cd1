package update

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Search  key.Binding
	Clear   key.Binding
	Copy    key.Binding
	Theme   key.Binding
	Command key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Add:     key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add task")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit task")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle done")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete task")),
		Search:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy task")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle dark mode")),
		Command: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Search, k.Clear, k.Copy, k.Theme, k.Command, k.Help, k.Quit},
	}
}
