package web

import (
	"encoding/json"
	"net/http"
)

// maxJSONBody caps every JSON request body.
const maxJSONBody = 1 << 20

type recipeRequest struct {
	Item string `json:"item" validate:"required"`
}

type recipeResponse struct {
	Recipe string `json:"recipe"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleRecipe is the recipe proxy: one item name in, one short recipe out.
// Upstream details are logged, never returned.
func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil || s.validate.Struct(req) != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Item is required"})
		return
	}

	text, err := s.recipes.Generate(r.Context(), req.Item)
	if err != nil {
		s.logger.Error("recipe generation failed", "item", req.Item, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch recipe"})
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse{Recipe: text})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
