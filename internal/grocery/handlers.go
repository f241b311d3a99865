package grocery

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/auth"
	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for grocery lists.
type Handler struct {
	service *Service
}

// NewHandler creates a new grocery handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/grocery?date=YYYY-MM-DD (default: today)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	items, err := h.service.ListForDate(ctx, ownerUserID, dateParam(r, "date"))
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build grocery list")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

// HandleListWeek handles GET /v1/grocery/week?start=YYYY-MM-DD (default: today)
func (h *Handler) HandleListWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	items, err := h.service.ListForWeek(ctx, ownerUserID, dateParam(r, "start"))
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build grocery list")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

// HandleSetCompletion handles PUT /v1/grocery/completion
func (h *Handler) HandleSetCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var req SetCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	if err := h.service.SetCompletion(ctx, ownerUserID, req.Name, req.Completed); err != nil {
		if err.Error() == "name is required" {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save completion state")
		return
	}

	writeJSON(w, http.StatusOK, SetCompletionRequest{
		Name:      strings.ToLower(strings.TrimSpace(req.Name)),
		Completed: req.Completed,
	})
}

// HandleShare handles GET /v1/grocery/share?date=YYYY-MM-DD&week=1
func (h *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var message string
	var err error
	if r.URL.Query().Get("week") == "1" {
		message, err = h.service.ShareForWeek(ctx, ownerUserID, dateParam(r, "date"))
	} else {
		message, err = h.service.ShareForDate(ctx, ownerUserID, dateParam(r, "date"))
	}
	if err != nil {
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build share message")
		return
	}

	writeJSON(w, http.StatusOK, ShareResponse{Message: message})
}

// HandleCreateExport handles POST /v1/grocery/exports
func (h *Handler) HandleCreateExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	var req CreateExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	export, err := h.service.CreateExport(ctx, ownerUserID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "validation_error",
				strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		if isDateError(err) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create export")
		return
	}

	writeJSON(w, http.StatusCreated, export)
}

// HandleListExports handles GET /v1/grocery/exports
func (h *Handler) HandleListExports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	exports, err := h.service.ListExports(ctx, ownerUserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list exports")
		return
	}
	if exports == nil {
		exports = []Export{}
	}

	writeJSON(w, http.StatusOK, ListExportsResponse{Exports: exports})
}

// HandleGetExport handles GET /v1/grocery/exports/{id}
func (h *Handler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid export ID")
		return
	}

	export, err := h.service.GetExport(ctx, ownerUserID, id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", "Export not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get export")
		return
	}

	writeJSON(w, http.StatusOK, export)
}

// HandleDownloadExport handles GET /v1/grocery/exports/{id}/download
// Redirects to a presigned URL in blob mode, streams the bytes in local mode.
func (h *Handler) HandleDownloadExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := auth.UserIDFrom(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid export ID")
		return
	}

	url, data, contentType, err := h.service.Download(ctx, ownerUserID, id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", "Export not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to download export")
		return
	}

	if url != "" {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func dateParam(r *http.Request, name string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return mealplans.DateKey(time.Now())
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
	return err != nil && strings.Contains(err.Error(), "invalid date format")
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
