package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/recipe"
)

func TestGenerate(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Banana bread: mash bananas, mix with flour, bake."}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer server.Close()

	g, err := NewGenerator(context.Background(), "gemini-test-key", "", server.URL)
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, "Banana bread: mash bananas, mix with flour, bake.", text)
	assert.True(t, strings.HasSuffix(gotPath, DefaultModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, recipe.UserPrompt("banana"))
	assert.Contains(t, gotBody, recipe.SystemPrompt)
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer server.Close()

	g, err := NewGenerator(context.Background(), "gemini-test-key", "", server.URL)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "banana")
	assert.Error(t, err)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g, err := NewGenerator(context.Background(), "gemini-test-key", "", server.URL)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "banana")
	assert.Error(t, err)
}
