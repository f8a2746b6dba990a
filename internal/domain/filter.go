package domain

import (
	"slices"
	"strings"
)

// Filter returns, in their original order, the items whose lower-case form
// contains the lower-case query. An empty query keeps every item.
func Filter(items []string, query string) []string {
	if query == "" {
		return slices.Clone(items)
	}
	needle := strings.ToLower(query)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterList pairs a fixed item list with a live query.
type FilterList struct {
	items []string
	query string
}

func NewFilterList(items []string) FilterList {
	return FilterList{items: slices.Clone(items)}
}

func (l *FilterList) SetQuery(query string) {
	l.query = query
}

func (l FilterList) Query() string {
	return l.query
}

func (l FilterList) Items() []string {
	return slices.Clone(l.items)
}

// Visible is recomputed on every call; nothing is cached.
func (l FilterList) Visible() []string {
	return Filter(l.items, l.query)
}
