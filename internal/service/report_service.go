// internal/service/report_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

type ReportService struct {
	Store store.Store
	Email notify.EmailSender
}

// GenerateDashboardSummary snapshots the key metrics for a period. Overdue
// here means a not-completed task flagged priority "high". That is a
// different computation from DashboardService.MarketingSnapshot's date
// comparison, kept distinct intentionally.
func (s *ReportService) GenerateDashboardSummary(period string) (map[string]any, error) {
	if period == "" {
		period = "daily"
	}
	summary := map[string]any{
		"period":              period,
		"active_campaigns":    0,
		"completed_campaigns": 0,
		"tasks_in_progress":   0,
		"overdue_tasks":       0,
		"pending_assets":      0,
	}

	campaigns, err := s.Store.Fetch(model.CollectionCampaigns, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range campaigns {
		switch c["status"] {
		case model.CampaignStatusActive:
			summary["active_campaigns"] = summary["active_campaigns"].(int) + 1
		case model.CampaignStatusComplete:
			summary["completed_campaigns"] = summary["completed_campaigns"].(int) + 1
		}
	}

	tasks, err := s.Store.Fetch(model.CollectionTasks, nil)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t["status"] == model.TaskStatusInProgress {
			summary["tasks_in_progress"] = summary["tasks_in_progress"].(int) + 1
		}
		if t["status"] != model.TaskStatusCompleted && t["priority"] == "high" {
			summary["overdue_tasks"] = summary["overdue_tasks"].(int) + 1
		}
	}

	assets, err := s.Store.Fetch(model.CollectionAssets, nil)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if a["status"] == model.AssetStatusPending {
			summary["pending_assets"] = summary["pending_assets"].(int) + 1
		}
	}

	return summary, nil
}

// SendPeriodicMarketingReport emails the summary. Delivery problems come
// back as a status payload, never as an error.
func (s *ReportService) SendPeriodicMarketingReport(toEmail, period string) (map[string]any, error) {
	if period == "" {
		period = "weekly"
	}
	summary, err := s.GenerateDashboardSummary(period)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Marketing Hub - %s Report", titleCase(period))
	return s.Email.Send(toEmail, subject, reportHTML(summary)), nil
}

// ReportEmailJob builds the weekly report as a queueable job instead of
// sending inline; the scheduler publishes it.
func (s *ReportService) ReportEmailJob(toEmail, period string) (notify.EmailJob, error) {
	summary, err := s.GenerateDashboardSummary(period)
	if err != nil {
		return notify.EmailJob{}, err
	}
	return notify.EmailJob{
		To:       toEmail,
		Subject:  fmt.Sprintf("Marketing Hub - %s Report", titleCase(period)),
		HTMLBody: reportHTML(summary),
	}, nil
}

func reportHTML(summary map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h2>Marketing Hub Report (%s)</h2><ul>", summary["period"])
	fmt.Fprintf(&b, "<li><strong>Active Campaigns:</strong> %d</li>", summary["active_campaigns"])
	fmt.Fprintf(&b, "<li><strong>Completed Campaigns:</strong> %d</li>", summary["completed_campaigns"])
	fmt.Fprintf(&b, "<li><strong>Tasks In Progress:</strong> %d</li>", summary["tasks_in_progress"])
	fmt.Fprintf(&b, "<li><strong>Overdue Tasks:</strong> %d</li>", summary["overdue_tasks"])
	fmt.Fprintf(&b, "<li><strong>Pending Assets:</strong> %d</li>", summary["pending_assets"])
	b.WriteString("</ul><p>Login to the dashboard for more details.</p></body></html>")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
