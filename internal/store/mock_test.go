package store_test

import (
	"testing"

	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func TestInsertFetchRoundTrip(t *testing.T) {
	m := store.NewMock()

	inserted, err := m.Insert("campaigns", store.Record{
		"name":        "Launch",
		"channel":     []any{"email"},
		"owner_email": "manager@example.com",
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	id, ok := inserted["id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected assigned id, got %v", inserted["id"])
	}

	got, err := m.Fetch("campaigns", store.Filters{"id": id})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0]["name"] != "Launch" || got[0]["owner_email"] != "manager@example.com" {
		t.Errorf("submitted fields not intact: %v", got[0])
	}
	channels, ok := got[0]["channel"].([]any)
	if !ok || len(channels) != 1 || channels[0] != "email" {
		t.Errorf("channel field not intact: %v", got[0]["channel"])
	}
}

func TestMockIDsAreCollectionSizeDerived(t *testing.T) {
	m := store.NewMock()

	first, _ := m.Insert("tasks", store.Record{"title": "a"})
	second, _ := m.Insert("tasks", store.Record{"title": "b"})

	if first["id"] != "1" || second["id"] != "2" {
		t.Errorf("expected ids 1 and 2, got %v and %v", first["id"], second["id"])
	}
}

func TestFetchAppliesAllFiltersByEquality(t *testing.T) {
	m := store.NewMock()
	m.Insert("tasks", store.Record{"title": "a", "status": "todo", "assignee": "x@example.com"})
	m.Insert("tasks", store.Record{"title": "b", "status": "todo", "assignee": "y@example.com"})
	m.Insert("tasks", store.Record{"title": "c", "status": "completed", "assignee": "x@example.com"})

	got, err := m.Fetch("tasks", store.Filters{"status": "todo", "assignee": "x@example.com"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(got) != 1 || got[0]["title"] != "a" {
		t.Errorf("expected only task a, got %v", got)
	}

	all, _ := m.Fetch("tasks", nil)
	if len(all) != 3 {
		t.Errorf("nil filters should impose no constraint, got %d records", len(all))
	}
}

func TestFetchUnknownCollectionIsEmptyNotError(t *testing.T) {
	m := store.NewMock()
	got, err := m.Fetch("nonexistent", nil)
	if err != nil {
		t.Fatalf("unknown collection must not fail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestUpdateMissingIDIsSoftNoOp(t *testing.T) {
	m := store.NewMock()
	got, err := m.Update("campaigns", "999", store.Record{"status": "active"})
	if err != nil {
		t.Fatalf("missing id must not fail: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record, got %v", got)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	m := store.NewMock()
	rec, _ := m.Insert("campaigns", store.Record{"name": "Launch", "status": "planned"})
	id := rec["id"].(string)

	patch := store.Record{"status": "active"}
	first, err := m.Update("campaigns", id, patch)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	second, err := m.Update("campaigns", id, patch)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	if first["status"] != "active" || second["status"] != "active" {
		t.Errorf("expected status active after both updates, got %v then %v", first["status"], second["status"])
	}
	if first["name"] != second["name"] {
		t.Errorf("patch applied twice must yield the same final state")
	}
}

func TestCountMatchesFetchLength(t *testing.T) {
	m := store.NewMockSeeded()

	recs, _ := m.Fetch("campaigns", store.Filters{"status": "active"})
	n, err := m.Count("campaigns", store.Filters{"status": "active"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != len(recs) {
		t.Errorf("count %d != fetch length %d", n, len(recs))
	}

	zero, _ := m.Count("nonexistent", nil)
	if zero != 0 {
		t.Errorf("unknown collection count should be 0, got %d", zero)
	}
}

func TestFetchedRecordsDoNotAliasStoredState(t *testing.T) {
	m := store.NewMock()
	rec, _ := m.Insert("assets", store.Record{"status": "pending"})
	id := rec["id"].(string)

	got, _ := m.Fetch("assets", store.Filters{"id": id})
	got[0]["status"] = "approved"

	again, _ := m.Fetch("assets", store.Filters{"id": id})
	if again[0]["status"] != "pending" {
		t.Errorf("mutating a fetched record must not change stored state")
	}
}
