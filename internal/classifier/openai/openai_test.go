package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/classifier"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func TestClassify(t *testing.T) {
	var gotBody string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("  Banana\n"))
	}))
	defer server.Close()

	c := NewClassifier("sk-test", server.URL, "")

	label, err := c.Classify(context.Background(), "https://example.com/banana.jpg")
	require.NoError(t, err)
	assert.Equal(t, "  Banana\n", label, "trimming is left to the caller")
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Contains(t, gotBody, "https://example.com/banana.jpg")
	assert.Contains(t, gotBody, classifier.LabelPrompt)
	assert.Contains(t, gotBody, `"image_url"`)
	assert.Contains(t, gotBody, "gpt-4o")
}

func TestClassifyAPIError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClassifier("sk-test", server.URL, "gpt-4o")

	_, err := c.Classify(context.Background(), "https://example.com/x.jpg")
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "no retries")
}

func TestClassifyNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := chatCompletion("")
		resp["choices"] = []any{}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClassifier("sk-test", server.URL, "gpt-4o")

	_, err := c.Classify(context.Background(), "https://example.com/x.jpg")
	assert.Error(t, err)
}
