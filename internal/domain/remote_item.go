package domain

// RemoteItem is one record of the product catalog. Items are replaced as a
// whole collection and never edited individually.
type RemoteItem struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       *float64
}
