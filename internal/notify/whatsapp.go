// internal/notify/whatsapp.go
package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/config"
)

// WhatsAppSender delivers one WhatsApp message and reports the outcome as
// a status payload, same non-throwing contract as email.
type WhatsAppSender interface {
	Send(toNumber, body string) map[string]any
}

// TwilioSender posts to the Twilio Messages endpoint, or simulates the
// send when any credential is missing.
type TwilioSender struct {
	Cfg    config.Config
	Log    *zap.SugaredLogger
	Client *http.Client

	// BaseURL is overridden in tests; defaults to the Twilio API.
	BaseURL string
}

var _ WhatsAppSender = (*TwilioSender)(nil)

func NewTwilioSender(cfg config.Config, log *zap.SugaredLogger) *TwilioSender {
	return &TwilioSender{
		Cfg:     cfg,
		Log:     log,
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: "https://api.twilio.com",
	}
}

func (s *TwilioSender) Send(toNumber, body string) map[string]any {
	if !s.Cfg.HasWhatsApp() {
		return map[string]any{
			"status":   "mock",
			"message":  "WhatsApp send simulated (missing credentials)",
			"provider": "twilio",
		}
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.BaseURL, s.Cfg.TwilioAccountSID)
	form := url.Values{
		"From": {s.Cfg.TwilioWhatsAppFrom},
		"To":   {"whatsapp:" + toNumber},
		"Body": {body},
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return twilioError(err.Error())
	}
	req.SetBasicAuth(s.Cfg.TwilioAccountSID, s.Cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Warnw("whatsapp send failed", "to", toNumber, "error", err)
		return twilioError(err.Error())
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return twilioError(string(raw))
	}

	var parsed struct {
		SID string `json:"sid"`
	}
	_ = json.Unmarshal(raw, &parsed)

	return map[string]any{
		"status":   "success",
		"sid":      parsed.SID,
		"to":       toNumber,
		"provider": "twilio",
	}
}

func twilioError(msg string) map[string]any {
	return map[string]any{"status": "error", "message": msg, "provider": "twilio"}
}
