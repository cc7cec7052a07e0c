package service_test

import (
	"testing"

	"github.com/unclebandit/marketinghub-backend/internal/service"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func TestMarketingSnapshotCounters(t *testing.T) {
	m := store.NewMock()
	m.Insert("campaigns", store.Record{"status": "active"})
	m.Insert("campaigns", store.Record{"status": "active"})
	m.Insert("campaigns", store.Record{"status": "completed"})
	m.Insert("campaigns", store.Record{"status": "draft"})

	// Overdue counts a not-completed task whose due_date sorts before now.
	m.Insert("tasks", store.Record{"status": "in_progress", "due_date": "2001-01-01"})
	m.Insert("tasks", store.Record{"status": "completed", "due_date": "2001-01-01"})
	m.Insert("tasks", store.Record{"status": "todo", "due_date": "2999-01-01"})
	m.Insert("tasks", store.Record{"status": "in_progress"})

	m.Insert("assets", store.Record{"status": "pending"})
	m.Insert("assets", store.Record{"status": "approved"})

	svc := &service.DashboardService{Store: m}
	snap, err := svc.MarketingSnapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	want := map[string]int{
		"active_campaigns":    2,
		"completed_campaigns": 1,
		"tasks_in_progress":   2,
		"overdue_tasks":       1,
		"pending_assets":      1,
	}
	for key, expected := range want {
		if snap[key] != expected {
			t.Errorf("%s = %v, want %d", key, snap[key], expected)
		}
	}
	if ts, _ := snap["updated_at"].(string); ts == "" {
		t.Error("expected updated_at timestamp")
	}
}

func TestMarketingSnapshotCompletedTaskNeverOverdue(t *testing.T) {
	m := store.NewMock()
	m.Insert("tasks", store.Record{"status": "completed", "due_date": "2001-01-01"})
	m.Insert("tasks", store.Record{"status": "todo"})

	svc := &service.DashboardService{Store: m}
	snap, err := svc.MarketingSnapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap["overdue_tasks"] != 0 {
		t.Errorf("completed or dateless tasks must not count as overdue, got %v", snap["overdue_tasks"])
	}
}

func TestChannelPerformanceAggregates(t *testing.T) {
	m := store.NewMock()
	m.Insert("campaigns", store.Record{"channel": []any{"email", "social"}})
	m.Insert("campaigns", store.Record{"channel": []any{"email"}})
	// A bare-string channel value is tolerated.
	m.Insert("campaigns", store.Record{"channel": "ads"})

	svc := &service.DashboardService{Store: m}
	stats, err := svc.ChannelPerformance()
	if err != nil {
		t.Fatalf("channel performance failed: %v", err)
	}

	if len(stats) != 3 {
		t.Fatalf("expected 3 channels, got %d: %v", len(stats), stats)
	}

	// Output is sorted by channel name.
	wantOrder := []string{"ads", "email", "social"}
	wantCount := map[string]int{"ads": 1, "email": 2, "social": 1}
	for i, row := range stats {
		ch, _ := row["channel"].(string)
		if ch != wantOrder[i] {
			t.Errorf("position %d: got channel %s, want %s", i, ch, wantOrder[i])
		}
		if row["campaigns"] != wantCount[ch] {
			t.Errorf("channel %s: got %v campaigns, want %d", ch, row["campaigns"], wantCount[ch])
		}
	}
}

func TestChannelPerformanceEmptyStore(t *testing.T) {
	svc := &service.DashboardService{Store: store.NewMock()}
	stats, err := svc.ChannelPerformance()
	if err != nil {
		t.Fatalf("channel performance failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected empty stats, got %v", stats)
	}
}
