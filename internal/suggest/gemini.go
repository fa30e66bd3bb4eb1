package suggest

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel ...
const DefaultModel = "gemini-2.5-flash"

type gemini struct {
	c     *genai.Client
	model string
}

// NewGemini returns Model backed by Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}

	if model == "" {
		model = DefaultModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return gemini{c: c, model: model}, nil
}

func (g gemini) Generate(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	var cfg *genai.GenerateContentConfig
	if jsonOutput {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.c.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
