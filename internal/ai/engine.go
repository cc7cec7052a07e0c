// internal/ai/engine.go
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Engine produces a completion for a system/user prompt pair. An absent or
// failing engine must never surface to tool callers; the service layer
// substitutes deterministic mock payloads.
type Engine interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GenAIEngine calls the Gemini API.
type GenAIEngine struct {
	client *genai.Client
	model  string
}

var _ Engine = (*GenAIEngine)(nil)

// NewGenAIEngine creates a Gemini-backed engine.
func NewGenAIEngine(ctx context.Context, apiKey, model string) (*GenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIEngine{client: client, model: model}, nil
}

func (e *GenAIEngine) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI completion failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}

// Name returns the engine name.
func (e *GenAIEngine) Name() string {
	return fmt.Sprintf("genai:%s", e.model)
}
