// internal/ai/assistant.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Assistant wraps an Engine with the marketing tool operations. Engine may
// be nil (no credentials); every operation then returns its fixed mock
// payload marked with source: "mock".
type Assistant struct {
	Engine Engine
	Log    *zap.SugaredLogger
}

func NewAssistant(engine Engine, log *zap.SugaredLogger) *Assistant {
	return &Assistant{Engine: engine, Log: log}
}

// complete returns the engine's text or "" when the engine is absent or
// the call fails. Callers treat "" as the signal to fall back.
func (a *Assistant) complete(ctx context.Context, systemPrompt, userPrompt string) string {
	if a.Engine == nil {
		return ""
	}
	text, err := a.Engine.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		a.Log.Warnw("ai completion failed, using mock payload", "error", err)
		return ""
	}
	return text
}

// stripFences removes a markdown code fence around a JSON body, which the
// model frequently adds even when asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CampaignReview analyzes a campaign and returns a score, strengths,
// weaknesses, recommendations, and a predicted trend.
func (a *Assistant) CampaignReview(ctx context.Context, campaign map[string]any) map[string]any {
	payload, _ := json.Marshal(campaign)
	prompt := fmt.Sprintf("Analyze this marketing campaign: %s. Provide a score (0-100), strengths, weaknesses, recommendations, and a predicted trend (improving, stable, declining). Return JSON.", payload)

	if text := a.complete(ctx, "You are a senior marketing strategist.", prompt); text != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err == nil {
			return parsed
		}
	}

	return map[string]any{
		"score":     78,
		"strengths": []any{"Strong visual identity", "Clear call-to-action", "Good initial engagement"},
		"weaknesses": []any{"Target audience too broad", "Budget allocation unclear"},
		"recommendations": []any{
			"Narrow down the target demographic to 25-34yo.",
			"Increase spend on Instagram Reels.",
			"A/B test the headline copy.",
		},
		"predicted_trend": "stable",
		"source":          "mock",
	}
}

// GenerateIdeas produces creative marketing ideas for a topic.
func (a *Assistant) GenerateIdeas(ctx context.Context, topic string, count int) []any {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf("Generate %d creative marketing ideas for: %s. Return a JSON list of strings.", count, topic)

	if text := a.complete(ctx, "You are a creative director.", prompt); text != "" {
		var parsed []any
		if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err == nil {
			return parsed
		}
	}

	return []any{
		fmt.Sprintf("Viral TikTok challenge about %s", topic),
		fmt.Sprintf("Interactive webinar series featuring experts on %s", topic),
		fmt.Sprintf("User-generated content contest with %s theme", topic),
		fmt.Sprintf("Partnership with micro-influencers in the %s niche", topic),
		fmt.Sprintf("Gamified loyalty program rewards for %s", topic),
	}
}

// GenerateCopy writes marketing copy in the requested style.
func (a *Assistant) GenerateCopy(ctx context.Context, style string, details map[string]any) string {
	payload, _ := json.Marshal(details)
	prompt := fmt.Sprintf("Write marketing copy. Style: %s. Details: %s.", style, payload)

	if text := a.complete(ctx, "You are an expert copywriter.", prompt); text != "" {
		return text
	}

	benefit, _ := details["benefit"].(string)
	if benefit == "" {
		benefit = "Efficiency"
	}
	cta, _ := details["cta"].(string)
	if cta == "" {
		cta = "Sign Up Now"
	}
	return fmt.Sprintf("[%s COPY]\n\nUnlock the full potential of your business with our latest offering. We've listened to your feedback and crafted a solution that perfectly matches your needs.\n\nKey Benefit: %s\nCall to Action: %s\n\nDon't miss out!",
		strings.ToUpper(style), benefit, cta)
}

// MarketingCalendar plans channel activities over the requested weeks.
func (a *Assistant) MarketingCalendar(ctx context.Context, startDate string, weeks int) []any {
	if weeks <= 0 {
		weeks = 4
	}
	prompt := fmt.Sprintf("Generate a %d-week marketing calendar starting %s. Return JSON list of objects with 'date', 'channel', 'activity', 'topic'.", weeks, startDate)

	if text := a.complete(ctx, "You are a marketing planner.", prompt); text != "" {
		var parsed []any
		if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err == nil {
			return parsed
		}
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start = time.Now().UTC()
	}
	channels := []string{"Email", "Social Media", "Blog", "Ads"}
	activities := []string{"Post", "Blast", "Publish", "Launch"}

	calendar := []any{}
	for i := 0; i < weeks*3; i++ {
		dayOffset := i*2 + 1
		calendar = append(calendar, map[string]any{
			"date":     start.AddDate(0, 0, dayOffset).Format("2006-01-02"),
			"channel":  channels[i%len(channels)],
			"activity": activities[i%len(activities)],
			"topic":    fmt.Sprintf("Week %d Focus Topic", i/3+1),
		})
	}
	return calendar
}

// DevAssistant answers questions about the service using the tool catalog
// as context.
func (a *Assistant) DevAssistant(ctx context.Context, question, catalog string) map[string]any {
	prompt := fmt.Sprintf("Question: %s\n\nContext, the service's tool catalog:\n%s", question, catalog)

	if text := a.complete(ctx, "You are a senior Go developer assisting with this specific service.", prompt); text != "" {
		return map[string]any{
			"answer":  text,
			"context": "tool_catalog",
		}
	}

	return map[string]any{
		"answer":  fmt.Sprintf("I analyzed the tool catalog. Based on your question '%s': the HTTP surface is served from internal/controller, domain rules live in internal/service, and persistence goes through internal/store.\n\n(This is a mock response. Configure GENAI_API_KEY for real analysis.)", question),
		"context": "tool_catalog",
		"source":  "mock",
	}
}
