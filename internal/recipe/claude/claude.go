// Package claude generates recipes with Anthropic's Messages API.
package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/pantry/internal/recipe"
)

const DefaultModel = "claude-3-5-haiku-latest"

type Generator struct {
	client *anthropic.Client
	model  string
}

func NewGenerator(apiKey, model string, opts ...anthropic.ClientOption) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (g *Generator) Generate(ctx context.Context, item string) (string, error) {
	temperature := float32(recipe.Temperature)
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(g.model),
		System:      recipe.SystemPrompt,
		MaxTokens:   recipe.MaxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(recipe.UserPrompt(item)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	for _, blk := range resp.Content {
		if blk.Type == anthropic.MessagesContentTypeText && blk.Text != nil {
			return *blk.Text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text")
}
