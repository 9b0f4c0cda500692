package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// MaxLimit caps how many rows a single page can request.
const MaxLimit = 500

// Params holds cursor pagination inputs from controllers or services.
// A zero Limit means the caller wants every remaining row.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor marks the last row a client has already seen.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// NormalizeLimit clamps negative values to unbounded and caps the rest at MaxLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer returns the normalized limit plus one to detect the next page.
// Unbounded requests stay unbounded.
func LimitWithBuffer(limit int) int {
	normalized := NormalizeLimit(limit)
	if normalized == 0 {
		return 0
	}
	return normalized + 1
}

// After reports whether a row sorts strictly after the cursor in (created_at, id) order.
func (c Cursor) After(createdAt time.Time, id string) bool {
	if createdAt.Equal(c.CreatedAt) {
		return id > c.ID
	}
	return createdAt.After(c.CreatedAt)
}

// EncodeCursor builds an opaque cursor string from the provided values.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%s", cursor.CreatedAt.UTC().Format(time.RFC3339Nano), cursor.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string back into its components.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}

	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	return &Cursor{
		CreatedAt: t,
		ID:        parts[1],
	}, nil
}
