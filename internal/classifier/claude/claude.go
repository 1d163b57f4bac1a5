// Package claude labels images with Anthropic's Messages API. Claude needs the
// image bytes, so the image is downloaded first.
package claude

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/pantry/internal/classifier"
)

const DefaultModel = "claude-3-5-haiku-latest"

// maxTokens leaves room for a short label; the prompt asks for one or two words.
const maxTokens = 64

type Classifier struct {
	client     *anthropic.Client
	model      string
	httpClient *http.Client
}

func NewClassifier(apiKey, model string, opts ...anthropic.ClientOption) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{
		client:     anthropic.NewClient(apiKey, opts...),
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Classifier) Classify(ctx context.Context, imageURL string) (string, error) {
	data, mimeType, err := classifier.FetchImage(ctx, c.httpClient, imageURL)
	if err != nil {
		return "", err
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{{
			Role: anthropic.RoleUser,
			Content: []anthropic.MessageContent{
				anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
					anthropic.MessagesContentSourceTypeBase64,
					mimeType,
					base64.StdEncoding.EncodeToString(data),
				)),
				anthropic.NewTextMessageContent(classifier.LabelPrompt),
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	return firstText(resp), nil
}

func firstText(resp anthropic.MessagesResponse) string {
	for _, blk := range resp.Content {
		if blk.Type == anthropic.MessagesContentTypeText && blk.Text != nil {
			return *blk.Text
		}
	}
	return ""
}
