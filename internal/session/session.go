// Package session holds per-browser UI state: the recipes already fetched in
// this session, so reopening an item's recipe does not call the model again.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "pantry_session"

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an ID issued by NewID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

type recipes struct {
	mu     sync.Mutex
	byItem map[string]string
}

// RecipeCache maps session ID -> item name -> recipe text. A session expires
// ttl after it was last read or written, and the least recently used session
// is dropped once maxSessions is reached.
type RecipeCache struct {
	// mu serialises lookup-then-create so concurrent first writes for one
	// session share a single recipes map.
	mu       sync.Mutex
	sessions *expirable.LRU[string, *recipes]
}

func NewRecipeCache(maxSessions int, ttl time.Duration) *RecipeCache {
	return &RecipeCache{
		sessions: expirable.NewLRU[string, *recipes](maxSessions, nil, ttl),
	}
}

// touch returns the session's recipes and pushes its expiry back. When create
// is set a missing session is added.
func (c *RecipeCache) touch(sessionID string, create bool) (*recipes, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.sessions.Get(sessionID)
	if !ok {
		if !create {
			return nil, false
		}
		r = &recipes{byItem: make(map[string]string)}
	}
	// Add on an existing key resets its expiry; Get alone does not.
	c.sessions.Add(sessionID, r)
	return r, true
}

func (c *RecipeCache) Get(sessionID, item string) (string, bool) {
	r, ok := c.touch(sessionID, false)
	if !ok {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	text, ok := r.byItem[item]
	return text, ok
}

func (c *RecipeCache) Put(sessionID, item, text string) {
	r, _ := c.touch(sessionID, true)
	r.mu.Lock()
	r.byItem[item] = text
	r.mu.Unlock()
}
