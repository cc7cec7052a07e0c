// internal/service/notification_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

// NotificationService composes store lookups with the email and WhatsApp
// senders. Every operation returns a status payload; delivery failures
// degrade, they never propagate as errors. Only store failures do.
type NotificationService struct {
	Store    store.Store
	Email    notify.EmailSender
	WhatsApp notify.WhatsAppSender
}

// SendWhatsAppMessage delivers a raw message to a number.
func (s *NotificationService) SendWhatsAppMessage(toNumber, body string) map[string]any {
	return s.WhatsApp.Send(toNumber, body)
}

// SendEmail delivers a raw HTML email.
func (s *NotificationService) SendEmail(toEmail, subject, htmlBody string) map[string]any {
	return s.Email.Send(toEmail, subject, htmlBody)
}

// SendEmailReport is the text-or-HTML variant of SendEmail.
func (s *NotificationService) SendEmailReport(toEmail, subject, bodyText, bodyHTML string) map[string]any {
	body := bodyHTML
	if body == "" {
		body = bodyText
	}
	return s.Email.Send(toEmail, subject, body)
}

// SendCampaignUpdate messages a number with the campaign's current status.
func (s *NotificationService) SendCampaignUpdate(campaignID, toNumber string) (map[string]any, error) {
	campaigns, err := s.Store.Fetch(model.CollectionCampaigns, store.Filters{"id": campaignID})
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return map[string]any{"status": "error", "message": "Campaign not found"}, nil
	}

	campaign := campaigns[0]
	status, _ := campaign["status"].(string)
	if status == "" {
		status = "unknown"
	}
	msg := fmt.Sprintf("📢 Update: Campaign '%v' is currently %s.", campaign["name"], strings.ToUpper(status))
	return s.WhatsApp.Send(toNumber, msg), nil
}

// NotifyCampaignStatusChange messages the campaign owner's phone. The
// skipped reasons let callers distinguish "nothing to do" from delivery
// problems.
func (s *NotificationService) NotifyCampaignStatusChange(campaignID, newStatus string) (map[string]any, error) {
	campaigns, err := s.Store.Fetch(model.CollectionCampaigns, store.Filters{"id": campaignID})
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return map[string]any{"status": "error", "message": "Campaign not found"}, nil
	}

	ownerEmail, _ := campaigns[0]["owner_email"].(string)
	if ownerEmail == "" {
		return map[string]any{"status": "skipped", "reason": "no_owner_email"}, nil
	}

	users, err := s.Store.Fetch(model.CollectionUsers, store.Filters{"email": ownerEmail})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return map[string]any{"status": "skipped", "reason": "owner_not_found"}, nil
	}

	phone, _ := users[0]["phone_number"].(string)
	if phone == "" {
		return map[string]any{"status": "skipped", "reason": "no_phone_number"}, nil
	}

	msg := fmt.Sprintf("📢 Campaign Update: '%v' is now %s.", campaigns[0]["name"], strings.ToUpper(newStatus))
	return s.WhatsApp.Send(phone, msg), nil
}

// NotifyOverdueTasks alerts a manager about tasks requiring attention
// (every not-completed task counts, matching the original behavior).
func (s *NotificationService) NotifyOverdueTasks(managerEmail string) (map[string]any, error) {
	users, err := s.Store.Fetch(model.CollectionUsers, store.Filters{"email": managerEmail})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return map[string]any{"status": "error", "message": "Manager not found"}, nil
	}

	phone, _ := users[0]["phone_number"].(string)
	if phone == "" {
		return map[string]any{"status": "skipped", "reason": "no_phone_number"}, nil
	}

	tasks, err := s.Store.Fetch(model.CollectionTasks, nil)
	if err != nil {
		return nil, err
	}
	overdue := 0
	for _, t := range tasks {
		if t["status"] != model.TaskStatusCompleted {
			overdue++
		}
	}
	if overdue == 0 {
		return map[string]any{"status": "skipped", "reason": "no_overdue_tasks"}, nil
	}

	msg := fmt.Sprintf("⚠️ Alert: You have %d tasks requiring attention.", overdue)
	return s.WhatsApp.Send(phone, msg), nil
}
