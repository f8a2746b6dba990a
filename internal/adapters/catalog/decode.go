package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/evanschultz/widgets/internal/domain"
)

// ErrMalformedPayload is returned when the catalog body is not an array of objects.
var ErrMalformedPayload = errors.New("malformed catalog payload")

// itemRecord is the wire shape of one catalog entry.
type itemRecord struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       *float64        `json:"price"`
}

// DecodeItems parses a catalog payload. The body must be a JSON array of
// objects, each carrying an id given as a string or a number.
func DecodeItems(body []byte) ([]domain.RemoteItem, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	out := make([]domain.RemoteItem, 0, len(raw))
	for idx, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedPayload, idx)
		}
		var rec itemRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedPayload, idx, err)
		}
		id, err := decodeID(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedPayload, idx, err)
		}
		out = append(out, domain.RemoteItem{
			ID:          id,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    rec.Category,
			Price:       rec.Price,
		})
	}
	return out, nil
}

// decodeID accepts "7" or 7 and returns the textual form.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", fmt.Errorf("id must be a string or number: %w", err)
	}
	return n.String(), nil
}
