package service_test

import (
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func seededDeps() (*store.Mock, *auth.Service, *activity.Logger) {
	m := store.NewMockSeeded()
	log := zap.NewNop().Sugar()
	return m, auth.NewService(m, log), activity.NewLogger(m, log)
}

// auditEntries returns activity log entries for one action, ignoring the
// seeded login entry.
func auditEntries(m *store.Mock, action string) []store.Record {
	entries, _ := m.Fetch("activity_log", store.Filters{"action": action})
	return entries
}

type sentEmail struct {
	to, subject, body string
}

type fakeEmail struct {
	sent []sentEmail
}

var _ notify.EmailSender = (*fakeEmail)(nil)

func (f *fakeEmail) Send(to, subject, htmlBody string) map[string]any {
	f.sent = append(f.sent, sentEmail{to, subject, htmlBody})
	return map[string]any{"status": "success", "provider": "email"}
}

type sentWhatsApp struct {
	to, body string
}

type fakeWhatsApp struct {
	sent []sentWhatsApp
}

var _ notify.WhatsAppSender = (*fakeWhatsApp)(nil)

func (f *fakeWhatsApp) Send(toNumber, body string) map[string]any {
	f.sent = append(f.sent, sentWhatsApp{toNumber, body})
	return map[string]any{"status": "success", "provider": "twilio"}
}
