package tui

import "charm.land/bubbles/v2/key"

// keyMap holds every binding the model matches against.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	nextScreen key.Binding
	prevScreen key.Binding
	screenTodo key.Binding
	screenShop key.Binding
	screenFind key.Binding
	screenFlip key.Binding

	moveUp   key.Binding
	moveDown key.Binding
	copy     key.Binding

	addTask    key.Binding
	toggleTask key.Binding
	editTask   key.Binding
	deleteTask key.Binding

	focusSearch key.Binding
	flip        key.Binding

	submit key.Binding
	cancel key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		nextScreen: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		prevScreen: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		screenTodo: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "to-do")),
		screenShop: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "products")),
		screenFind: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "search")),
		screenFlip: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "switch")),

		moveUp:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		moveDown: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),

		addTask:    key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new task")),
		toggleTask: key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space/x", "toggle done")),
		editTask:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit title")),
		deleteTask: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),

		focusSearch: key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "search")),
		flip:        key.NewBinding(key.WithKeys("space", "enter", "t"), key.WithHelp("space/t", "flip switch")),

		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
	}
}

// screenHelp narrows the help bubble to the bindings of one screen.
type screenHelp struct {
	keys   keyMap
	screen screen
	typing bool
}

// ShortHelp handles short help.
func (h screenHelp) ShortHelp() []key.Binding {
	k := h.keys
	if h.typing {
		return []key.Binding{k.submit, k.cancel}
	}
	switch h.screen {
	case screenTodo:
		return []key.Binding{k.addTask, k.toggleTask, k.editTask, k.deleteTask, k.nextScreen, k.quit}
	case screenCatalog:
		return []key.Binding{k.moveDown, k.moveUp, k.copy, k.nextScreen, k.quit}
	case screenSearch:
		return []key.Binding{k.focusSearch, k.nextScreen, k.quit}
	case screenToggle:
		return []key.Binding{k.flip, k.nextScreen, k.quit}
	}
	return []key.Binding{k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (h screenHelp) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		h.ShortHelp(),
		{k.screenTodo, k.screenShop, k.screenFind, k.screenFlip, k.prevScreen, k.toggleHelp},
		{k.moveUp, k.moveDown, k.copy},
	}
}
