package tui

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/widgets/internal/app"
	"github.com/evanschultz/widgets/internal/domain"
)

// TaskStore is the to-do collection the todo screen drives.
type TaskStore interface {
	List(context.Context) ([]domain.Task, error)
	Add(context.Context, string) (domain.Task, bool, error)
	ToggleComplete(context.Context, string) (domain.Task, bool, error)
	SetTitle(context.Context, string, string) (domain.Task, bool, error)
	Delete(context.Context, string) (bool, error)
}

// CatalogLoader is the once-per-lifetime product fetch the catalog screen shows.
type CatalogLoader interface {
	Load(context.Context) (app.LoaderSnapshot, error)
	Snapshot() app.LoaderSnapshot
	Close()
}

// screen identifies one of the four widgets.
type screen int

// screenTodo and related constants define the tab order.
const (
	screenTodo screen = iota
	screenCatalog
	screenSearch
	screenToggle
	screenCount
)

// screenTitles stores tab labels in tab order.
var screenTitles = []string{"To-Do", "Products", "Search", "Switch"}

// screenByName maps config names onto screens.
var screenByName = map[string]screen{
	"todo":    screenTodo,
	"catalog": screenCatalog,
	"search":  screenSearch,
	"toggle":  screenToggle,
}

// todoFocus tracks which part of the todo screen receives keys.
type todoFocus int

const (
	todoFocusList todoFocus = iota
	todoFocusAdd
	todoFocusEdit
)

// defaultSearchItems is the search source used when no option overrides it.
var defaultSearchItems = []string{"coconut", "apple", "banana", "orange", "date", "grapes", "mango"}

// Model is the root bubbletea model hosting every widget screen.
type Model struct {
	tasks  TaskStore
	loader CatalogLoader

	width  int
	height int
	status string

	help help.Model
	keys keyMap

	screen screen

	// todo
	taskList   []domain.Task
	taskCursor int
	todoFocus  todoFocus
	addInput   textinput.Model
	editInput  textinput.Model
	edit       *app.EditSession

	// catalog
	catalog       app.LoaderSnapshot
	catalogCursor int
	spinner       spinner.Model
	markdown      *markdownRenderer

	// search
	filter      domain.FilterList
	searchInput textinput.Model

	// toggle
	toggle domain.Switch
}

// catalogLoadedMsg carries the settled loader snapshot.
type catalogLoadedMsg struct {
	snapshot app.LoaderSnapshot
	err      error
}

// NewModel constructs the root model.
func NewModel(tasks TaskStore, loader CatalogLoader, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	addInput := textinput.New()
	addInput.Prompt = "+ "
	addInput.Placeholder = "Add a new task"
	addInput.CharLimit = 200

	editInput := textinput.New()
	editInput.Prompt = ""
	editInput.CharLimit = 200

	searchInput := textinput.New()
	searchInput.Prompt = "/ "
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 120

	m := Model{
		tasks:       tasks,
		loader:      loader,
		help:        h,
		keys:        newKeyMap(),
		addInput:    addInput,
		editInput:   editInput,
		edit:        app.NewEditSession(tasks),
		catalog:     app.LoaderSnapshot{State: app.LoadStateLoading},
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62")))),
		markdown:    &markdownRenderer{},
		filter:      domain.NewFilterList(defaultSearchItems),
		searchInput: searchInput,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.refreshTasks()
	return m
}

// Init starts the single catalog fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog, m.spinner.Tick)
}

// loadCatalog runs the loader; it blocks until the fetch settles.
func (m Model) loadCatalog() tea.Msg {
	if m.loader == nil {
		return catalogLoadedMsg{snapshot: app.LoaderSnapshot{State: app.LoadStateFailed}}
	}
	snap, err := m.loader.Load(context.Background())
	return catalogLoadedMsg{snapshot: snap, err: err}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, msg.Width-2))
		return m, nil

	case catalogLoadedMsg:
		if errors.Is(msg.err, app.ErrLoaderClosed) {
			return m, nil
		}
		m.catalog = msg.snapshot
		m.catalogCursor = clamp(m.catalogCursor, 0, len(m.catalog.Items)-1)
		return m, nil

	case spinner.TickMsg:
		if m.catalog.State != app.LoadStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clipboardMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "copied " + msg.label
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	default:
		return m.forwardToFocusedInput(msg)
	}
}

// handleKey routes a key press to the focused input or the active screen.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.typing() {
		switch m.screen {
		case screenTodo:
			return m.handleTodoInputKey(msg)
		case screenSearch:
			return m.handleSearchInputKey(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.nextScreen):
		return m.switchScreen(screen((int(m.screen) + 1) % int(screenCount)))
	case key.Matches(msg, m.keys.prevScreen):
		return m.switchScreen(screen((int(m.screen) + int(screenCount) - 1) % int(screenCount)))
	case key.Matches(msg, m.keys.screenTodo):
		return m.switchScreen(screenTodo)
	case key.Matches(msg, m.keys.screenShop):
		return m.switchScreen(screenCatalog)
	case key.Matches(msg, m.keys.screenFind):
		return m.switchScreen(screenSearch)
	case key.Matches(msg, m.keys.screenFlip):
		return m.switchScreen(screenToggle)
	}

	switch m.screen {
	case screenTodo:
		return m.handleTodoKey(msg)
	case screenCatalog:
		return m.handleCatalogKey(msg)
	case screenSearch:
		return m.handleSearchKey(msg)
	case screenToggle:
		return m.handleToggleKey(msg)
	}
	return m, nil
}

// forwardToFocusedInput passes non-key messages, such as cursor blinks, to the input that owns focus.
func (m Model) forwardToFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.addInput.Focused():
		m.addInput, cmd = m.addInput.Update(msg)
	case m.editInput.Focused():
		m.editInput, cmd = m.editInput.Update(msg)
	case m.searchInput.Focused():
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// typing reports whether a text input currently captures keys.
func (m Model) typing() bool {
	switch m.screen {
	case screenTodo:
		return m.todoFocus != todoFocusList
	case screenSearch:
		return m.searchInput.Focused()
	}
	return false
}

// switchScreen leaves the current screen, committing any pending title edit.
func (m Model) switchScreen(next screen) (tea.Model, tea.Cmd) {
	m.leaveTodoInput()
	m.searchInput.Blur()
	m.screen = next
	m.status = ""
	if next == screenCatalog && m.catalog.State == app.LoadStateLoading {
		return m, m.spinner.Tick
	}
	return m, nil
}

// quit tears down background work and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.leaveTodoInput()
	if m.loader != nil {
		m.loader.Close()
	}
	return m, tea.Quit
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderScreen())
	v.AltScreen = true
	return v
}

// renderScreen renders tabs, the active screen, status, and help.
func (m Model) renderScreen() string {
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	var body string
	switch m.screen {
	case screenTodo:
		body = m.renderTodo()
	case screenCatalog:
		body = m.renderCatalog()
	case screenSearch:
		body = m.renderSearch()
	case screenToggle:
		body = m.renderToggle()
	}

	sections := []string{m.renderTabs(), "", body}
	if strings.TrimSpace(m.status) != "" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}

	helpBubble := m.help
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Render(helpBubble.View(screenHelp{keys: m.keys, screen: m.screen, typing: m.typing()}))

	content := strings.Join(sections, "\n")
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	return content + "\n" + helpLine
}

// renderTabs renders the screen tab strip.
func (m Model) renderTabs() string {
	accent := lipgloss.Color("62")
	dim := lipgloss.Color("239")
	active := lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(dim)
	parts := make([]string, 0, len(screenTitles))
	for idx, title := range screenTitles {
		label := title
		if screen(idx) == m.screen {
			parts = append(parts, active.Render(label))
			continue
		}
		parts = append(parts, inactive.Render(label))
	}
	return strings.Join(parts, "  ")
}

// fitLines truncates content to at most height lines.
func fitLines(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= height {
		return content
	}
	return strings.Join(lines[:height], "\n")
}

// clamp bounds v to [lo, hi]; an empty range yields lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
