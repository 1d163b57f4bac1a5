// Package openai generates recipes through any OpenAI-compatible chat
// completions API. Groq is the default provider.
package openai

import (
	"context"
	"fmt"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vbonduro/pantry/internal/recipe"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "llama3-8b-8192"
)

type Generator struct {
	client oai.Client
	model  string
}

// NewGenerator builds a generator for the provider at baseURL. SDK retries are
// disabled: a failed upstream call fails the request.
func NewGenerator(apiKey, baseURL, model string) *Generator {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	if model == "" {
		model = DefaultGroqModel
	}
	return &Generator{
		client: oai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

func (g *Generator) Generate(ctx context.Context, item string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(recipe.SystemPrompt),
			oai.UserMessage(recipe.UserPrompt(item)),
		},
		Temperature: oai.Float(recipe.Temperature),
		TopP:        oai.Float(recipe.TopP),
		MaxTokens:   oai.Int(recipe.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to call chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
