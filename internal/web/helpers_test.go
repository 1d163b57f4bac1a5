package web_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/pantry/internal/service"
	"github.com/vbonduro/pantry/internal/session"
	"github.com/vbonduro/pantry/internal/store"
	"github.com/vbonduro/pantry/internal/web"
	"github.com/vbonduro/pantry/internal/web/templates"
)

// stubGenerator is a recipe.Generator that counts calls.
type stubGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	calls    int
	lastItem string
}

func (g *stubGenerator) Generate(_ context.Context, item string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastItem = item
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *stubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *stubGenerator) SetErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// stubClassifier is a classifier.Classifier returning a fixed label.
type stubClassifier struct {
	label string
	err   error
}

func (c *stubClassifier) Classify(context.Context, string) (string, error) {
	return c.label, c.err
}

// failingStore fails every call.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingStore) Get(context.Context, string, string) (*store.Document, error) {
	return nil, errStoreDown
}

func (failingStore) Set(context.Context, string, string, map[string]any) error { return errStoreDown }

func (failingStore) Delete(context.Context, string, string) error { return errStoreDown }

func (failingStore) List(context.Context, string) ([]*store.Document, error) {
	return nil, errStoreDown
}

type testEnv struct {
	srv *httptest.Server
	gen *stubGenerator
	cls *stubClassifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, store.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, docs store.DocumentStore) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := &stubGenerator{text: "Scramble the eggs with butter and salt."}
	cls := &stubClassifier{}
	svc := service.NewPantryService(docs, "inventory", cls, logger)
	cache := session.NewRecipeCache(16, time.Hour)
	srv := httptest.NewServer(web.NewServer(svc, gen, cache, templates.FS, logger))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, gen: gen, cls: cls}
}

// newClient returns a client with its own cookie jar, i.e. its own session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// htmxPost submits a form the way the page's HTMX attributes do.
func htmxPost(t *testing.T, c *http.Client, target string, form url.Values) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return do(t, c, req)
}

func htmxGet(t *testing.T, c *http.Client, target string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	return do(t, c, req)
}

func doJSON(t *testing.T, method, target, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return do(t, http.DefaultClient, req)
}

func do(t *testing.T, c *http.Client, req *http.Request) (int, string) {
	t.Helper()
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}
