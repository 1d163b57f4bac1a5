package recipe

import "context"

// SystemPrompt and UserPrompt form the fixed two-message prompt every backend sends.
const SystemPrompt = "If applicable give a recipe to make the item, keep it short 50 words or less"

func UserPrompt(item string) string {
	return "Give me a recipe using " + item
}

// Sampling settings shared by all backends.
const (
	Temperature = 1.0
	TopP        = 1.0
	MaxTokens   = 1024
)

// Generator turns an item name into a short recipe suggestion.
type Generator interface {
	Generate(ctx context.Context, item string) (string, error)
}
