// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries every environment-driven setting. Absence of a credential
// group degrades that one capability to mock/simulated mode without
// affecting the others.
type Config struct {
	Port        string
	DatabaseURL string
	MockMode    bool

	GenAIKey   string
	GenAIModel string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	FromAddress string

	AMQPURL          string
	SchedulerEnabled bool
}

// Load reads the process environment. godotenv is applied by main before
// this runs.
func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MockMode:    strings.EqualFold(os.Getenv("MOCK_MODE"), "true"),

		GenAIKey:   os.Getenv("GENAI_API_KEY"),
		GenAIModel: getenv("GENAI_MODEL", "gemini-2.0-flash"),

		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),

		SMTPHost:    firstEnv("EMAIL_SMTP_HOST", "SMTP_HOST"),
		SMTPPort:    firstEnv("EMAIL_SMTP_PORT", "SMTP_PORT"),
		SMTPUser:    firstEnv("EMAIL_SMTP_USER", "SMTP_USER"),
		SMTPPass:    firstEnv("EMAIL_SMTP_PASSWORD", "SMTP_PASSWORD"),
		FromAddress: firstEnv("EMAIL_FROM_ADDRESS", "EMAIL_FROM"),

		AMQPURL:          os.Getenv("AMQP_URL"),
		SchedulerEnabled: strings.EqualFold(os.Getenv("ENABLE_SCHEDULER"), "true"),
	}

	// Compose a DSN from the discrete DB_* variables when DATABASE_URL is
	// not set, matching how the deploy environments provide credentials.
	if cfg.DatabaseURL == "" {
		user := os.Getenv("DB_USER")
		name := os.Getenv("DB_NAME")
		if user != "" && name != "" {
			cfg.DatabaseURL = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=disable",
				user,
				os.Getenv("DB_PASSWORD"),
				getenv("DB_HOST", "localhost"),
				getenv("DB_PORT", "5432"),
				name,
			)
		}
	}

	return cfg
}

func (c Config) HasDatabase() bool { return !c.MockMode && c.DatabaseURL != "" }
func (c Config) HasAI() bool       { return c.GenAIKey != "" }

func (c Config) HasWhatsApp() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

func (c Config) HasEmail() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" &&
		c.SMTPPass != "" && c.FromAddress != ""
}

func (c Config) HasAMQP() bool { return c.AMQPURL != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
