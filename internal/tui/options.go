package tui

import (
	"strings"

	"github.com/evanschultz/widgets/internal/domain"
)

type Option func(*Model)

// WithStartScreen selects the first screen by config name (todo, catalog, search, toggle).
func WithStartScreen(name string) Option {
	return func(m *Model) {
		if s, ok := screenByName[strings.TrimSpace(strings.ToLower(name))]; ok {
			m.screen = s
		}
	}
}

// WithSearchItems replaces the fixed list the search screen filters.
func WithSearchItems(items []string) Option {
	return func(m *Model) {
		if items == nil {
			return
		}
		m.filter = domain.NewFilterList(items)
	}
}

// WithMarkdownStyle sets the glamour standard style for product details.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		style = strings.TrimSpace(style)
		if style == "" {
			return
		}
		m.markdown = &markdownRenderer{style: style}
	}
}
