package storage

import "testing"

func TestUUIDOrNil(t *testing.T) {
	if got := uuidOrNil(""); got != nil {
		t.Fatalf("expected nil for empty id, got %v", got)
	}
	id := "6f1f6f1a-9a68-4a6b-9d3a-2f6f3a1d0c11"
	if got := uuidOrNil(id); got != id {
		t.Fatalf("expected %q passed through, got %v", id, got)
	}
}
