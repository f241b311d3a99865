package recipes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frankiefreesbie/glucko-server/internal/auth"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the recipe catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new recipes handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/recipes?favorites=1
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var (
		list []Recipe
		err  error
	)
	if r.URL.Query().Get("favorites") == "1" {
		list, err = h.service.Favorites(ctx, ownerUserID)
	} else {
		list, err = h.service.List(ctx, ownerUserID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list recipes")
		return
	}

	if list == nil {
		list = []Recipe{}
	}
	writeJSON(w, http.StatusOK, ListRecipesResponse{Recipes: list})
}

// HandleGet handles GET /v1/recipes/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid recipe id")
		return
	}

	recipe, err := h.service.Get(ctx, ownerUserID, id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", "Recipe not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// HandleCreate handles POST /v1/recipes
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	recipe, err := h.service.Create(ctx, ownerUserID, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusBadRequest, "invalid_request", msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

// HandleSetFavorite handles PUT /v1/recipes/{id}/favorite
func (h *Handler) HandleSetFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid recipe id")
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	if err := h.service.SetFavorite(ctx, ownerUserID, id, req.IsFavorite); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", "Recipe not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update favorite")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": req.IsFavorite})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

func validationMessage(err error) (string, bool) {
	const prefix = "validation failed: "
	msg := err.Error()
	if strings.HasPrefix(msg, prefix) {
		return msg[len(prefix):], true
	}
	return "", false
}
