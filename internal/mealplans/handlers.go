package mealplans

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/auth"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for meal plans.
type Handler struct {
	service *Service
}

// NewHandler creates a new meal plans handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetPlan handles GET /v1/plan?date=YYYY-MM-DD (default: today)
func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = DateKey(time.Now())
	}

	plan, err := h.service.PlanForDate(ctx, ownerUserID, date)
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleSetMeal handles PUT /v1/plan/{date}/{slot}
func (h *Handler) HandleSetMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	date := r.PathValue("date")
	slot, err := ParseSlot(r.PathValue("slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req SetMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if req.RecipeID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "recipe_id is required")
		return
	}

	plan, err := h.service.SetMeal(ctx, ownerUserID, date, slot, req.RecipeID)
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", "Recipe not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to set meal")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleRemoveMeal handles DELETE /v1/plan/{date}/{slot}
func (h *Handler) HandleRemoveMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	date := r.PathValue("date")
	slot, err := ParseSlot(r.PathValue("slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plan, err := h.service.RemoveMeal(ctx, ownerUserID, date, slot)
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to remove meal")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleClearDay handles DELETE /v1/plan/{date}
func (h *Handler) HandleClearDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	if err := h.service.ClearDay(ctx, ownerUserID, r.PathValue("date")); err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to clear day")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGenerateDay handles POST /v1/plan/{date}/generate
func (h *Handler) HandleGenerateDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	plan, err := h.service.GenerateDay(ctx, ownerUserID, r.PathValue("date"))
	if err != nil {
		if errors.Is(err, ErrNotEnoughRecipes) {
			writeError(w, http.StatusConflict, "not_enough_recipes", err.Error())
			return
		}
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate meal plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// HandleGenerateWeek handles POST /v1/plan/generate-week?date=YYYY-MM-DD
// The week is anchored to the Monday of the given date (default: today).
func (h *Handler) HandleGenerateWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	anchor := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := ParseDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		anchor = parsed
	}

	weekStart, days, err := h.service.GenerateWeek(ctx, ownerUserID, anchor)
	if err != nil {
		if errors.Is(err, ErrNotEnoughRecipes) {
			writeError(w, http.StatusConflict, "not_enough_recipes", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate weekly plan")
		return
	}

	writeJSON(w, http.StatusOK, GenerateWeekResponse{WeekStart: weekStart, Days: days})
}

// HandleSwapMeal handles POST /v1/plan/{date}/{slot}/swap
func (h *Handler) HandleSwapMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	date := r.PathValue("date")
	slot, err := ParseSlot(r.PathValue("slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	picked, err := h.service.SwapMeal(ctx, ownerUserID, date, slot)
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to swap meal")
		return
	}

	writeJSON(w, http.StatusOK, SwapResponse{Swapped: picked != nil, Recipe: picked})
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

func isDateError(err error) bool {
	return err != nil && err.Error() == "invalid date format, expected YYYY-MM-DD"
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
