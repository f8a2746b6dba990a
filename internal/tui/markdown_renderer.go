package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/evanschultz/widgets/internal/domain"
)

// defaultMarkdownStyle is the glamour standard style used when none is set.
const defaultMarkdownStyle = "dark"

// markdownRenderer renders product details and recreates the renderer when wrap width changes.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown input into ANSI-styled terminal text with the requested wrap width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, 24)
	if r.renderer == nil || r.width != wrapWidth {
		style := r.style
		if style == "" {
			style = defaultMarkdownStyle
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// itemMarkdown builds the detail document for one catalog item.
func itemMarkdown(item domain.RemoteItem) string {
	var b strings.Builder
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "Item " + item.ID
	}
	fmt.Fprintf(&b, "## %s\n\n", title)

	var facts []string
	if cat := strings.TrimSpace(item.Category); cat != "" {
		facts = append(facts, "*"+cat+"*")
	}
	if item.Price != nil {
		facts = append(facts, formatPrice(*item.Price))
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " · "))
		b.WriteString("\n\n")
	}

	if desc := strings.TrimSpace(item.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}
	return b.String()
}

// formatPrice renders a price in dollars with two decimals.
func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}
