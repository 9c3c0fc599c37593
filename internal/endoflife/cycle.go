package endoflife

import (
	"bytes"
	"encoding/json"
)

// Cycle is a single release cycle of a product.
// Only the fields the allowlist needs are decoded; the API returns many more.
type Cycle struct {
	// Cycle is the release cycle name. The API uses strings and numbers.
	Cycle json.RawMessage `json:"cycle,omitempty"`

	// Link is the raw "link" value. It is usually a string, but may be null,
	// false or missing.
	Link json.RawMessage `json:"link,omitempty"`
}

// LinkString returns the link when it is a JSON string.
func (c Cycle) LinkString() (string, bool) {
	raw := bytes.TrimSpace(c.Link)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
