package service_test

import (
	"strings"
	"testing"

	"github.com/unclebandit/marketinghub-backend/internal/service"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func TestGenerateDashboardSummary(t *testing.T) {
	m := store.NewMock()
	m.Insert("campaigns", store.Record{"status": "active"})
	m.Insert("campaigns", store.Record{"status": "completed"})
	m.Insert("campaigns", store.Record{"status": "draft"})

	// Overdue here means not-completed and priority high, regardless of
	// dates.
	m.Insert("tasks", store.Record{"status": "todo", "priority": "high"})
	m.Insert("tasks", store.Record{"status": "completed", "priority": "high"})
	m.Insert("tasks", store.Record{"status": "in_progress"})

	m.Insert("assets", store.Record{"status": "pending"})

	svc := &service.ReportService{Store: m, Email: &fakeEmail{}}
	summary, err := svc.GenerateDashboardSummary("")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary["period"] != "daily" {
		t.Errorf("period defaults to daily, got %v", summary["period"])
	}
	want := map[string]int{
		"active_campaigns":    1,
		"completed_campaigns": 1,
		"tasks_in_progress":   1,
		"overdue_tasks":       1,
		"pending_assets":      1,
	}
	for key, expected := range want {
		if summary[key] != expected {
			t.Errorf("%s = %v, want %d", key, summary[key], expected)
		}
	}
}

func TestSendPeriodicMarketingReport(t *testing.T) {
	m := store.NewMockSeeded()
	mailer := &fakeEmail{}
	svc := &service.ReportService{Store: m, Email: mailer}

	result, err := svc.SendPeriodicMarketingReport("admin@example.com", "")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if result["status"] != "success" {
		t.Errorf("expected the sender's payload, got %v", result)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	sent := mailer.sent[0]
	if sent.to != "admin@example.com" {
		t.Errorf("wrong recipient: %s", sent.to)
	}
	if sent.subject != "Marketing Hub - Weekly Report" {
		t.Errorf("period defaults to weekly in the subject, got %q", sent.subject)
	}
	if !strings.Contains(sent.body, "Active Campaigns") {
		t.Errorf("report body missing metrics: %s", sent.body)
	}
}

func TestReportEmailJobBuildsWithoutSending(t *testing.T) {
	m := store.NewMockSeeded()
	mailer := &fakeEmail{}
	svc := &service.ReportService{Store: m, Email: mailer}

	job, err := svc.ReportEmailJob("admin@example.com", "weekly")
	if err != nil {
		t.Fatalf("job build failed: %v", err)
	}
	if job.To != "admin@example.com" || job.Subject != "Marketing Hub - Weekly Report" {
		t.Errorf("job header wrong: %+v", job)
	}
	if !strings.Contains(job.HTMLBody, "Marketing Hub Report (weekly)") {
		t.Errorf("job body missing period heading: %s", job.HTMLBody)
	}
	if len(mailer.sent) != 0 {
		t.Error("building a job must not send anything")
	}
}
