package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/config"
)

func twilioConfig() config.Config {
	return config.Config{
		TwilioAccountSID:   "AC123",
		TwilioAuthToken:    "token",
		TwilioWhatsAppFrom: "whatsapp:+14155550000",
	}
}

func TestTwilioSenderSimulatesWithoutCredentials(t *testing.T) {
	s := NewTwilioSender(config.Config{}, zap.NewNop().Sugar())

	result := s.Send("+15551234", "hello")
	if result["status"] != "mock" || result["provider"] != "twilio" {
		t.Errorf("expected mock payload, got %v", result)
	}
}

func TestTwilioSenderPostsMessage(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		r.ParseForm()
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM123"}`))
	}))
	defer srv.Close()

	s := NewTwilioSender(twilioConfig(), zap.NewNop().Sugar())
	s.BaseURL = srv.URL

	result := s.Send("+15551234", "Campaign is live")
	if result["status"] != "success" {
		t.Fatalf("expected success, got %v", result)
	}
	if result["sid"] != "SM123" || result["to"] != "+15551234" {
		t.Errorf("payload missing sid/to: %v", result)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("wrong endpoint: %s", gotPath)
	}
	if gotUser != "AC123" {
		t.Errorf("basic auth should use the account SID, got %s", gotUser)
	}
	if gotTo != "whatsapp:+15551234" {
		t.Errorf("recipient must carry the whatsapp prefix, got %s", gotTo)
	}
	if gotFrom != "whatsapp:+14155550000" || gotBody != "Campaign is live" {
		t.Errorf("wrong form fields: from=%s body=%s", gotFrom, gotBody)
	}
}

func TestTwilioSenderReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid token"}`))
	}))
	defer srv.Close()

	s := NewTwilioSender(twilioConfig(), zap.NewNop().Sugar())
	s.BaseURL = srv.URL

	result := s.Send("+15551234", "hello")
	if result["status"] != "error" || result["provider"] != "twilio" {
		t.Fatalf("expected error payload, got %v", result)
	}
	msg, _ := result["message"].(string)
	if !strings.Contains(msg, "invalid token") {
		t.Errorf("error payload should carry the API body, got %q", msg)
	}
}
