package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/pantry/internal/classifier"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/service"
)

type itemsResponse struct {
	Items []*domain.Item `json:"items"`
}

type itemResponse struct {
	Item *domain.Item `json:"item"`
}

type addItemRequest struct {
	Name string `json:"name" validate:"required"`
}

type classifyRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (s *Server) handleAPIListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.pantry.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error("list items failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list items"})
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (s *Server) handleAPIAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil || s.validate.Struct(req) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Name is required"})
		return
	}

	item, err := s.pantry.AddItem(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Name is required"})
			return
		}
		s.logger.Error("add item failed", "name", req.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to add item"})
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

func (s *Server) handleAPIClassifyItem(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil || s.validate.Struct(req) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "A valid image URL is required"})
		return
	}

	item, err := s.pantry.AddItemFromImage(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, classifier.ErrInvalidImageURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "A valid image URL is required"})
			return
		}
		if errors.Is(err, classifier.ErrEmptyLabel) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Could not identify the image"})
			return
		}
		s.logger.Error("classify item failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to add item"})
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}

// handleAPIRemoveItem returns the remaining item, or null once it is gone.
func (s *Server) handleAPIRemoveItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	item, err := s.pantry.RemoveItem(r.Context(), name)
	if err != nil {
		s.logger.Error("remove item failed", "name", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to remove item"})
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item})
}
