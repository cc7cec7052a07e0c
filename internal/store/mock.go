// internal/store/mock.go
package store

import (
	"strconv"
	"sync"
)

// Mock is the in-memory backend. Each instance owns its data, so tests and
// processes construct exactly the store they need instead of sharing
// package-level state.
type Mock struct {
	mu          sync.Mutex
	collections map[string][]Record
}

var _ Store = (*Mock)(nil)

// NewMock returns an empty in-memory store.
func NewMock() *Mock {
	return &Mock{collections: make(map[string][]Record)}
}

// NewMockSeeded returns an in-memory store preloaded with the demo dataset
// the service runs on when no live backend is configured.
func NewMockSeeded() *Mock {
	m := NewMock()
	m.collections = SeedData()
	return m
}

func (m *Mock) Fetch(collection string, filters Filters) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Record{}
	for _, rec := range m.collections[collection] {
		if matches(rec, filters) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (m *Mock) Insert(collection string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneRecord(rec)
	// Ids are derived from collection size, monotonic only while the
	// process lives.
	stored["id"] = strconv.Itoa(len(m.collections[collection]) + 1)
	m.collections[collection] = append(m.collections[collection], stored)
	return cloneRecord(stored), nil
}

func (m *Mock) Update(collection, id string, patch Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.collections[collection] {
		if rec["id"] == id {
			for k, v := range cloneRecord(patch) {
				rec[k] = v
			}
			return cloneRecord(rec), nil
		}
	}
	// Missing id is a soft no-op, not a failure.
	return nil, nil
}

func (m *Mock) Count(collection string, filters Filters) (int, error) {
	recs, err := m.Fetch(collection, filters)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// cloneRecord deep-copies maps and slices so callers never alias stored
// state.
func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneRecord(t)
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = cloneValue(e)
		}
		return c
	case []string:
		c := make([]string, len(t))
		copy(c, t)
		return c
	default:
		return v
	}
}

// SeedData is the demo dataset: three users (one per role), two
// campaigns, two tasks, one asset, and one activity entry. The mock store
// preloads it and cmd/seeder writes it into a fresh live database.
func SeedData() map[string][]Record {
	return map[string][]Record{
		"users": {
			{"email": "admin@example.com", "role": "admin", "name": "Admin User"},
			{"email": "manager@example.com", "role": "manager", "name": "Manager User"},
			{"email": "team@example.com", "role": "team", "name": "Team User"},
		},
		"campaigns": {
			{"id": "1", "name": "Summer Sale", "status": "active", "channel": []any{"email", "social"},
				"start_date": "2024-06-01", "end_date": "2024-08-31", "owner_email": "manager@example.com"},
			{"id": "2", "name": "Black Friday", "status": "draft", "channel": []any{"ads"},
				"start_date": "2024-11-01", "end_date": "2024-11-30", "owner_email": "admin@example.com"},
		},
		"tasks": {
			{"id": "1", "title": "Design Ad Creatives", "status": "in_progress", "assignee": "team@example.com",
				"due_date": "2024-06-15", "related_campaign_id": "1"},
			{"id": "2", "title": "Approve Budget", "status": "todo", "assignee": "manager@example.com",
				"due_date": "2024-06-10", "related_campaign_id": "1"},
		},
		"assets": {
			{"id": "1", "description": "Banner Image", "file_url": "https://via.placeholder.com/300",
				"status": "pending", "requester_email": "team@example.com", "created_at": "2024-06-01T10:00:00Z"},
		},
		"activity_log": {
			{"id": "1", "actor_email": "admin@example.com", "action": "login", "entity_type": "user",
				"entity_id": "admin@example.com", "created_at": "2024-06-01T09:00:00Z"},
		},
	}
}
