package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/pantry/internal/classifier"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/session"
)

// gridView is the data behind the item grid. Error is shown in place of the
// grid when the store could not be read.
type gridView struct {
	Items []*domain.Item
	Query string
	Error string
}

type recipeView struct {
	Item   string
	Recipe string
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.ensureSession(w, r)
	s.renderGrid(w, r, "")
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	s.renderGrid(w, r, r.URL.Query().Get("q"))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name != "" {
		if _, err := s.pantry.AddItem(r.Context(), name); err != nil {
			s.logger.Error("add item failed", "name", name, "error", err)
		}
	}
	s.renderGrid(w, r, r.FormValue("q"))
}

func (s *Server) handleAddItemFromImage(w http.ResponseWriter, r *http.Request) {
	imageURL := strings.TrimSpace(r.FormValue("url"))
	if imageURL != "" {
		if _, err := s.pantry.AddItemFromImage(r.Context(), imageURL); err != nil {
			switch {
			case errors.Is(err, classifier.ErrInvalidImageURL):
				s.logger.Warn("image url rejected", "url", imageURL)
			case errors.Is(err, classifier.ErrEmptyLabel):
				s.logger.Warn("image not recognised", "url", imageURL)
			default:
				s.logger.Error("add item from image failed", "url", imageURL, "error", err)
			}
		}
	}
	s.renderGrid(w, r, r.FormValue("q"))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := s.pantry.RemoveItem(r.Context(), name); err != nil {
		s.logger.Error("remove item failed", "name", name, "error", err)
	}
	s.renderGrid(w, r, r.FormValue("q"))
}

// handleItemRecipe shows a recipe for one item, reusing the recipe this
// session already fetched for it. Failures are shown inline and not cached.
func (s *Server) handleItemRecipe(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	item := r.PathValue("name")

	view := recipeView{Item: item}
	if text, ok := s.cache.Get(sessionID, item); ok {
		s.metrics.recipeLookup("hit")
		view.Recipe = text
	} else {
		text, err := s.recipes.Generate(r.Context(), item)
		if err != nil {
			s.metrics.recipeLookup("error")
			s.logger.Error("recipe generation failed", "item", item, "error", err)
			view.Error = "Failed to fetch recipe"
		} else {
			s.metrics.recipeLookup("miss")
			s.cache.Put(sessionID, item, text)
			view.Recipe = text
		}
	}

	if err := s.renderPartial(w, "partials/recipe.html", view); err != nil {
		s.logger.Error("render partial error", "error", err)
	}
}

// renderGrid re-reads the store and renders the grid fragment for HTMX
// requests or the whole page otherwise. Store errors are logged and rendered
// as a message; the response is still 200 so HTMX swaps it in.
func (s *Server) renderGrid(w http.ResponseWriter, r *http.Request, query string) {
	view := gridView{Query: query}
	items, err := s.pantry.SearchItems(r.Context(), query)
	if err != nil {
		s.logger.Error("list items failed", "error", err)
		view.Error = "Could not load the pantry"
	} else {
		view.Items = items
	}

	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "partials/item_grid.html", view); err != nil {
			s.logger.Error("render partial error", "error", err)
		}
		return
	}

	if err := s.renderPage(w, view,
		"base.html", "pages/pantry.html", "partials/item_grid.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

// ensureSession returns the caller's session ID, issuing a new cookie when
// the request carries none or a malformed one.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(session.CookieName); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
