// internal/notify/email.go
package notify

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/config"
)

// EmailJob is the payload queued by the scheduler and report tools and
// delivered by a queue subscriber or the AMQP worker.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// EmailSender delivers one HTML email and reports the outcome as a status
// payload. Delivery failures never fail the caller's tool invocation.
type EmailSender interface {
	Send(to, subject, htmlBody string) map[string]any
}

// SMTPSender sends through the configured SMTP relay, or simulates the
// send when any credential is missing.
type SMTPSender struct {
	Cfg config.Config
	Log *zap.SugaredLogger

	// sendMail is swapped in tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ EmailSender = (*SMTPSender)(nil)

func NewSMTPSender(cfg config.Config, log *zap.SugaredLogger) *SMTPSender {
	return &SMTPSender{Cfg: cfg, Log: log, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) map[string]any {
	if !s.Cfg.HasEmail() {
		return map[string]any{
			"status":   "mock",
			"message":  "Email send simulated (missing credentials)",
			"provider": "email",
		}
	}

	msg := []byte("From: " + s.Cfg.FromAddress + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		htmlBody + "\r\n")

	addr := fmt.Sprintf("%s:%s", s.Cfg.SMTPHost, s.Cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.Cfg.SMTPUser, s.Cfg.SMTPPass, s.Cfg.SMTPHost)

	if err := s.sendMail(addr, auth, s.Cfg.FromAddress, []string{to}, msg); err != nil {
		s.Log.Warnw("email send failed", "to", to, "error", err)
		return map[string]any{
			"status":   "error",
			"message":  err.Error(),
			"provider": "email",
		}
	}

	return map[string]any{"status": "success", "provider": "email"}
}
