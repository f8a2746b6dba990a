package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/widgets/internal/domain"
)

// handleTodoKey handles list navigation and task actions.
func (m Model) handleTodoKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.addTask):
		m.todoFocus = todoFocusAdd
		m.status = ""
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.moveUp):
		m.taskCursor = clamp(m.taskCursor-1, 0, len(m.taskList)-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.taskCursor = clamp(m.taskCursor+1, 0, len(m.taskList)-1)
		return m, nil
	}

	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.toggleTask):
		updated, changed, err := m.tasks.ToggleComplete(context.Background(), task.ID)
		if err != nil {
			m.status = "toggle failed: " + err.Error()
			return m, nil
		}
		if changed {
			m.status = fmt.Sprintf("%q marked %s", updated.Title, strings.ToLower(updated.StatusLabel()))
		}
		m.refreshTasks()
		return m, nil
	case key.Matches(msg, m.keys.editTask):
		m.edit.Begin(task)
		m.editInput.SetValue(task.Title)
		m.editInput.CursorEnd()
		m.todoFocus = todoFocusEdit
		m.status = ""
		return m, m.editInput.Focus()
	case key.Matches(msg, m.keys.deleteTask):
		removed, err := m.tasks.Delete(context.Background(), task.ID)
		if err != nil {
			m.status = "delete failed: " + err.Error()
			return m, nil
		}
		if removed {
			m.status = fmt.Sprintf("deleted %q", task.Title)
		}
		m.refreshTasks()
		return m, nil
	case key.Matches(msg, m.keys.copy):
		return m, copyToClipboard("task title", task.Title)
	}
	return m, nil
}

// handleTodoInputKey handles keys while the add or edit input has focus.
func (m Model) handleTodoInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.nextScreen):
		return m.switchScreen(screen((int(m.screen) + 1) % int(screenCount)))
	case key.Matches(msg, m.keys.prevScreen):
		return m.switchScreen(screen((int(m.screen) + int(screenCount) - 1) % int(screenCount)))
	}

	if m.todoFocus == todoFocusEdit {
		switch msg.String() {
		case "enter", "esc":
			m.commitEdit()
			return m, nil
		case "up":
			m.commitEdit()
			m.taskCursor = clamp(m.taskCursor-1, 0, len(m.taskList)-1)
			return m, nil
		case "down":
			m.commitEdit()
			m.taskCursor = clamp(m.taskCursor+1, 0, len(m.taskList)-1)
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		m.edit.UpdateText(m.editInput.Value())
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.addInput.Blur()
		m.todoFocus = todoFocusList
		return m, nil
	case "enter":
		added, ok, err := m.tasks.Add(context.Background(), m.addInput.Value())
		if err != nil {
			m.status = "add failed: " + err.Error()
			return m, nil
		}
		if !ok {
			return m, nil
		}
		m.addInput.Reset()
		m.refreshTasks()
		m.focusTaskByID(added.ID)
		m.status = fmt.Sprintf("added %q", added.Title)
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// leaveTodoInput blurs the todo inputs, committing an active title edit.
func (m *Model) leaveTodoInput() {
	if m.todoFocus == todoFocusEdit {
		m.commitEdit()
	}
	m.addInput.Blur()
	m.todoFocus = todoFocusList
}

// commitEdit writes the provisional title and returns focus to the list.
func (m *Model) commitEdit() {
	m.editInput.Blur()
	m.todoFocus = todoFocusList
	if _, err := m.edit.Commit(context.Background()); err != nil {
		m.status = "rename failed: " + err.Error()
	}
	m.refreshTasks()
}

// refreshTasks reloads the task list from the store.
func (m *Model) refreshTasks() {
	if m.tasks == nil {
		return
	}
	tasks, err := m.tasks.List(context.Background())
	if err != nil {
		m.status = "load tasks failed: " + err.Error()
		return
	}
	m.taskList = tasks
	m.taskCursor = clamp(m.taskCursor, 0, len(m.taskList)-1)
}

// focusTaskByID moves the cursor onto id when present.
func (m *Model) focusTaskByID(id string) {
	for idx, task := range m.taskList {
		if task.ID == id {
			m.taskCursor = idx
			return
		}
	}
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() (domain.Task, bool) {
	if m.taskCursor < 0 || m.taskCursor >= len(m.taskList) {
		return domain.Task{}, false
	}
	return m.taskList[m.taskCursor], true
}

// renderTodo renders the to-do screen.
func (m Model) renderTodo() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneTitle := lipgloss.NewStyle().Bold(true)
	doneBadge := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingBadge := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	lines := []string{titleStyle.Render("To-Do List"), m.addInput.View(), ""}
	if len(m.taskList) == 0 {
		lines = append(lines, mutedStyle.Render("No tasks yet. Press n to add one."))
		return strings.Join(lines, "\n")
	}

	editingID, editing := m.edit.Active()
	done := 0
	for idx, task := range m.taskList {
		marker := "  "
		if idx == m.taskCursor && m.todoFocus != todoFocusAdd {
			marker = cursorStyle.Render("› ")
		}
		check := "[ ]"
		if task.Completed {
			check = "[x]"
			done++
		}
		title := task.Title
		switch {
		case editing && task.ID == editingID:
			title = m.editInput.View()
		case task.Completed:
			title = doneTitle.Render(title)
		}
		badge := pendingBadge.Render(task.StatusLabel())
		if task.Completed {
			badge = doneBadge.Render(task.StatusLabel())
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  %s", marker, check, title, badge))
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%d of %d completed", done, len(m.taskList))))
	return strings.Join(lines, "\n")
}
