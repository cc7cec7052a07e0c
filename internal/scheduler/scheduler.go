// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/queue"
	"github.com/unclebandit/marketinghub-backend/internal/service"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// adminReportRecipient receives the weekly campaign report.
const adminReportRecipient = "admin@example.com"

// Scheduler runs the periodic jobs on an independent timer outside caller
// request paths. It reads and writes the same store with no coordination
// against concurrent tool invocations; readers tolerate stale views.
type Scheduler struct {
	Store    store.Store
	Reports  *service.ReportService
	Activity *activity.Logger
	Queue    queue.Queue
	Log      *zap.SugaredLogger

	cron *cron.Cron
	now  func() time.Time
}

func New(s store.Store, reports *service.ReportService, act *activity.Logger, q queue.Queue, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		Store:    s,
		Reports:  reports,
		Activity: act,
		Queue:    q,
		Log:      log,
		now:      time.Now,
	}
}

// Start registers the cron entries and begins ticking. Daily digest at
// 09:00, weekly report Friday 17:00, archive sweep hourly.
func (s *Scheduler) Start() error {
	s.cron = cron.New()

	entries := []struct {
		spec string
		job  func()
	}{
		{"0 9 * * *", s.RunDailyTaskDigest},
		{"0 17 * * FRI", s.RunWeeklyCampaignReport},
		{"0 * * * *", s.RunArchiveFinishedCampaigns},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.job); err != nil {
			return fmt.Errorf("register cron entry %q: %w", e.spec, err)
		}
	}

	s.cron.Start()
	s.Log.Infow("scheduler started", "jobs", len(entries))
	return nil
}

// Stop halts the cron loop; running jobs finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunDailyTaskDigest groups all tasks by assignee and publishes one digest
// email job per assignee.
func (s *Scheduler) RunDailyTaskDigest() {
	s.Log.Infow("running job", "job", "daily_task_digest")

	tasks, err := s.Store.Fetch(model.CollectionTasks, nil)
	if err != nil {
		s.Log.Warnw("digest task fetch failed", "error", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	byAssignee := map[string][]store.Record{}
	for _, t := range tasks {
		assignee, _ := t["assignee"].(string)
		if assignee != "" {
			byAssignee[assignee] = append(byAssignee[assignee], t)
		}
	}

	// Deterministic publish order.
	emails := make([]string, 0, len(byAssignee))
	for email := range byAssignee {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		userTasks := byAssignee[email]
		job := notify.EmailJob{
			To:       email,
			Subject:  fmt.Sprintf("Daily Task Digest: %d tasks assigned to you", len(userTasks)),
			HTMLBody: digestHTML(userTasks),
		}
		if err := s.Queue.Publish(queue.TopicNotificationSends, job); err != nil {
			s.Log.Warnw("digest publish failed", "assignee", email, "error", err)
		}
	}
}

func digestHTML(tasks []store.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>You have %d tasks:</h3><ul>", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "<li>%v (%v)</li>", t["title"], t["status"])
	}
	b.WriteString("</ul>")
	return b.String()
}

// RunWeeklyCampaignReport publishes the weekly summary email for the
// admin recipient.
func (s *Scheduler) RunWeeklyCampaignReport() {
	s.Log.Infow("running job", "job", "weekly_campaign_report")

	job, err := s.Reports.ReportEmailJob(adminReportRecipient, "weekly")
	if err != nil {
		s.Log.Warnw("weekly report build failed", "error", err)
		return
	}
	if err := s.Queue.Publish(queue.TopicNotificationSends, job); err != nil {
		s.Log.Warnw("weekly report publish failed", "error", err)
	}
}

// RunArchiveFinishedCampaigns moves active or completed campaigns whose
// end_date has passed to "archived", attributing the mutation to the
// scheduler principal.
func (s *Scheduler) RunArchiveFinishedCampaigns() {
	s.Log.Infow("running job", "job", "archive_finished_campaigns")

	campaigns, err := s.Store.Fetch(model.CollectionCampaigns, nil)
	if err != nil {
		s.Log.Warnw("archive campaign fetch failed", "error", err)
		return
	}

	today := s.now().UTC().Format("2006-01-02")
	for _, c := range campaigns {
		status, _ := c["status"].(string)
		endDate, _ := c["end_date"].(string)
		if status != model.CampaignStatusActive && status != model.CampaignStatusComplete {
			continue
		}
		if endDate == "" || endDate >= today {
			continue
		}

		id, _ := c["id"].(string)
		patch := store.Record{
			"status":     model.CampaignStatusArchived,
			"updated_at": s.now().UTC().Format(time.RFC3339),
		}
		if _, err := s.Store.Update(model.CollectionCampaigns, id, patch); err != nil {
			s.Log.Warnw("archive update failed", "campaign_id", id, "error", err)
			continue
		}

		s.Activity.BestEffort(model.SchedulerPrincipal, model.ActionArchiveCampaign,
			"campaign", id, map[string]any{"end_date": endDate})
	}
}
