// internal/service/dashboard_service.go
package service

import (
	"sort"
	"time"

	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// DashboardService produces purely derived views: full-collection scans
// and in-memory grouping, no persistence, no side effects.
type DashboardService struct {
	Store store.Store
}

// MarketingSnapshot returns the KPI counters. A task counts as overdue
// here when it is not completed and its due_date string sorts before the
// current RFC 3339 timestamp. reports.GenerateDashboardSummary uses a
// different overdue definition on purpose; the two are distinct named
// computations.
func (s *DashboardService) MarketingSnapshot() (map[string]any, error) {
	activeCampaigns, err := s.Store.Count(model.CollectionCampaigns, store.Filters{"status": model.CampaignStatusActive})
	if err != nil {
		return nil, err
	}
	completedCampaigns, err := s.Store.Count(model.CollectionCampaigns, store.Filters{"status": model.CampaignStatusComplete})
	if err != nil {
		return nil, err
	}
	tasksInProgress, err := s.Store.Count(model.CollectionTasks, store.Filters{"status": model.TaskStatusInProgress})
	if err != nil {
		return nil, err
	}
	pendingAssets, err := s.Store.Count(model.CollectionAssets, store.Filters{"status": model.AssetStatusPending})
	if err != nil {
		return nil, err
	}

	// Overdue needs a range comparison the store's equality filters cannot
	// express, so scan and compare in memory.
	tasks, err := s.Store.Fetch(model.CollectionTasks, nil)
	if err != nil {
		return nil, err
	}
	nowISO := time.Now().UTC().Format(time.RFC3339)
	overdue := 0
	for _, t := range tasks {
		status, _ := t["status"].(string)
		due, _ := t["due_date"].(string)
		if status != model.TaskStatusCompleted && due != "" && due < nowISO {
			overdue++
		}
	}

	return map[string]any{
		"active_campaigns":    activeCampaigns,
		"completed_campaigns": completedCampaigns,
		"tasks_in_progress":   tasksInProgress,
		"overdue_tasks":       overdue,
		"pending_assets":      pendingAssets,
		"updated_at":          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ChannelPerformance aggregates campaign counts per channel.
func (s *DashboardService) ChannelPerformance() ([]map[string]any, error) {
	campaigns, err := s.Store.Fetch(model.CollectionCampaigns, nil)
	if err != nil {
		return nil, err
	}

	stats := map[string]map[string]any{}
	for _, c := range campaigns {
		for _, ch := range channelsOf(c) {
			if _, ok := stats[ch]; !ok {
				stats[ch] = map[string]any{"channel": ch, "campaigns": 0}
			}
			stats[ch]["campaigns"] = stats[ch]["campaigns"].(int) + 1
		}
	}

	names := make([]string, 0, len(stats))
	for ch := range stats {
		names = append(names, ch)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, ch := range names {
		out = append(out, stats[ch])
	}
	return out, nil
}

// channelsOf tolerates both array and bare-string channel values.
func channelsOf(campaign store.Record) []string {
	switch v := campaign["channel"].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}
