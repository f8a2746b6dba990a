package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/widgets/internal/app"
	"github.com/evanschultz/widgets/internal/domain"
)

// CatalogFallbackText is shown whenever the fetch or decode failed or the feed was empty.
const CatalogFallbackText = "No data available or data format is incorrect."

// catalogHeader titles the product screen.
const catalogHeader = "Products and its Descriptions"

// handleCatalogKey handles product list navigation.
func (m Model) handleCatalogKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.catalog.State != app.LoadStateReady {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.moveUp):
		m.catalogCursor = clamp(m.catalogCursor-1, 0, len(m.catalog.Items)-1)
	case key.Matches(msg, m.keys.moveDown):
		m.catalogCursor = clamp(m.catalogCursor+1, 0, len(m.catalog.Items)-1)
	case key.Matches(msg, m.keys.copy):
		if item, ok := m.selectedItem(); ok {
			return m, copyToClipboard("product title", item.Title)
		}
	}
	return m, nil
}

// selectedItem returns the product under the cursor.
func (m Model) selectedItem() (domain.RemoteItem, bool) {
	if m.catalogCursor < 0 || m.catalogCursor >= len(m.catalog.Items) {
		return domain.RemoteItem{}, false
	}
	return m.catalog.Items[m.catalogCursor], true
}

// renderCatalog renders the product screen for the current load state.
func (m Model) renderCatalog() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	header := titleStyle.Render(catalogHeader)

	switch m.catalog.State {
	case app.LoadStateLoading:
		return header + "\n\n" + m.spinner.View() + " Loading..."
	case app.LoadStateFailed:
		return header + "\n\n" + mutedStyle.Render(CatalogFallbackText)
	}
	if len(m.catalog.Items) == 0 {
		return header + "\n\n" + mutedStyle.Render(CatalogFallbackText)
	}

	listWidth := 36
	detailWidth := 60
	if m.width > 0 {
		listWidth = clamp(m.width/3, 20, 48)
		detailWidth = max(24, m.width-listWidth-6)
	}

	list := m.renderCatalogList(listWidth)
	detail := ""
	if item, ok := m.selectedItem(); ok && m.markdown != nil {
		detail = m.markdown.render(itemMarkdown(item), detailWidth)
	}
	detailBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("239")).
		Padding(0, 1).
		Render(detail)
	summary := mutedStyle.Render(fmt.Sprintf("%d of %d", m.catalogCursor+1, len(m.catalog.Items)))
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detailBox) + "\n" + summary
}

// renderCatalogList renders one line per product with price when known.
func (m Model) renderCatalogList(width int) string {
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	priceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	lines := make([]string, 0, len(m.catalog.Items))
	for idx, item := range m.catalog.Items {
		title := truncate(item.Title, width-12)
		if strings.TrimSpace(title) == "" {
			title = "Item " + item.ID
		}
		line := "  " + title
		if idx == m.catalogCursor {
			line = selected.Render("› " + title)
		}
		if item.Price != nil {
			line += " " + priceStyle.Render(formatPrice(*item.Price))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
