package ids

import (
	"strings"
	"testing"
	"time"
)

func TestNewAtIsSortableWithinTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	first := NewAt(at)
	second := NewAt(at)
	if !(first < second) {
		t.Fatalf("expected monotonic ids, got %s then %s", first, second)
	}
	if len(first) != 26 {
		t.Fatalf("expected 26 char ulid, got %d", len(first))
	}
}

func TestPrefixed(t *testing.T) {
	id := Prefixed("PAY", time.Now())
	if !strings.HasPrefix(id, "PAY") || len(id) != 29 {
		t.Fatalf("unexpected prefixed id %q", id)
	}
}
