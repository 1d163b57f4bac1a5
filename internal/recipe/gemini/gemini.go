// Package gemini generates recipes with the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vbonduro/pantry/internal/recipe"
)

const DefaultModel = "gemini-2.0-flash"

type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator connects to the Gemini API. baseURL is empty in production and
// points at a fake server in tests.
func NewGenerator(ctx context.Context, apiKey, model, baseURL string) (*Generator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, item string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(recipe.UserPrompt(item)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(recipe.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](recipe.Temperature),
		TopP:              genai.Ptr[float32](recipe.TopP),
		MaxOutputTokens:   recipe.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
