package types

import (
	"encoding/json"
	"testing"
)

func TestNewListNeverNil(t *testing.T) {
	list := NewList[string](nil)
	if list.Count != 0 || list.Items == nil {
		t.Fatalf("expected empty non-nil list, got %+v", list)
	}
	raw, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"count":0,"items":[]}` {
		t.Fatalf("unexpected json %s", raw)
	}
}

func TestNewListCountsItems(t *testing.T) {
	if got := NewList([]int{1, 2, 3}).Count; got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
