package update

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/tasks"
	"github.com/sandeepkv93/todo/internal/views"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModeSearch  Mode = "search"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Add form field order.
const (
	fieldDescription = iota
	fieldPriority
	fieldCategory
	fieldDeadline
	fieldCount
)

type AddFormState struct {
	Focus    int
	Priority model.Priority
	Category model.Category
}

type SearchState struct {
	Active  bool
	Query   string
	Results []model.Task
}

type Model struct {
	Mode        Mode
	Cursor      int
	Add         AddFormState
	EditID      string
	Search      SearchState
	Theme       views.Theme
	Status      StatusBar
	HelpVisible bool
	Keys        KeyMap
	Quitting    bool
	LastError   error
	StoreLabel  string

	ctx            context.Context
	ctrl           *tasks.Controller
	logger         *log.Logger
	deadlineLayout string
	now            func() time.Time
	writeClipboard func(string) error
	width          int

	descInput     textinput.Model
	deadlineInput textinput.Model
	editInput     textinput.Model
	searchInput   textinput.Model
	commandInput  textinput.Model
	progressBar   progress.Model
	helpModel     help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(ctx context.Context, ctrl *tasks.Controller, cfg RuntimeConfig) Model {
	m := Model{
		Mode:           ModeList,
		Theme:          views.ThemeByName(cfg.Theme),
		Keys:           DefaultKeyMap(),
		StoreLabel:     cfg.StorePath(),
		ctx:            ctx,
		ctrl:           ctrl,
		logger:         logging.Discard(),
		deadlineLayout: cfg.DeadlineLayout,
		now:            time.Now,
		writeClipboard: clipboard.WriteAll,
	}
	if m.deadlineLayout == "" {
		m.deadlineLayout = DefaultRuntimeConfig().DeadlineLayout
	}
	m.resetAddForm()
	m.initBubbleComponents()
	return m
}

// WithLogger returns a copy of m that logs through logger.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.descInput = textinput.New()
	m.descInput.Prompt = ""
	m.descInput.Placeholder = "what needs doing?"
	m.descInput.Width = 40

	m.deadlineInput = textinput.New()
	m.deadlineInput.Prompt = ""
	m.deadlineInput.Width = 20

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.Width = 60

	m.searchInput = textinput.New()
	m.searchInput.Prompt = ""
	m.searchInput.Width = 30

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Width = 48

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
}

func (m *Model) resetAddForm() {
	m.Add = AddFormState{
		Focus:    fieldDescription,
		Priority: model.DefaultPriority,
		Category: model.DefaultCategory,
	}
}

// visibleTasks is the displayed set: search results while a search is
// active, otherwise the in-memory list.
func (m Model) visibleTasks() []model.Task {
	if m.Search.Active {
		return m.Search.Results
	}
	return m.ctrl.Tasks()
}

func (m Model) selectedTask() (model.Task, bool) {
	items := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) setStatus(text string) {
	m.Status = StatusBar{Text: text}
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("action failed", "err", err)
}
