package meallog

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/auth"
	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
)

// Handler handles HTTP requests for the meal journal.
type Handler struct {
	service *Service
}

// NewHandler creates a new meal log handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleLog handles POST /v1/meallog
func (h *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	meal, total, err := h.service.Log(ctx, ownerUserID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "validation_error",
				strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "not_found", "Recipe not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to log meal")
		return
	}

	writeJSON(w, http.StatusCreated, LogMealResponse{Meal: *meal, TotalPoints: total})
}

// HandleList handles GET /v1/meallog?from=YYYY-MM-DD&to=YYYY-MM-DD
// Defaults to the last 7 days.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := mealplans.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := mealplans.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		// Inclusive end of day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	meals, err := h.service.List(ctx, ownerUserID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list logged meals")
		return
	}
	if meals == nil {
		meals = []LoggedMeal{}
	}

	writeJSON(w, http.StatusOK, ListResponse{Meals: meals})
}

// HandlePoints handles GET /v1/meallog/points
func (h *Handler) HandlePoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	total, err := h.service.Points(ctx, ownerUserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get points")
		return
	}

	writeJSON(w, http.StatusOK, PointsResponse{TotalPoints: total})
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
