package auth

import (
	"encoding/json"
	"net/http"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleDevAuth handles POST /v1/auth/dev — local dev token without an
// external identity provider. Disabled outside dev auth mode.
func (h *Handlers) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	if h.service.config.AuthMode != "dev" {
		writeError(w, http.StatusForbidden, "forbidden", "Dev auth is disabled")
		return
	}

	resp, err := h.service.SignInDev()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to sign in")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
