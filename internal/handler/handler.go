package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avdeyev/liblend/internal/domain"
	"github.com/avdeyev/liblend/internal/logger"
	"github.com/avdeyev/liblend/internal/service"
)

// IdentityVerifier validates a Google ID token and yields the identity it
// asserts. Kept as an interface so handler tests need no network or crypto.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (domain.ExternalIdentity, error)
}

type Handler struct {
	registry    service.RegistryService
	assignments service.AssignmentService
	catalog     service.CatalogService
	verifier    IdentityVerifier
}

func New(registry service.RegistryService, assignments service.AssignmentService, catalog service.CatalogService, verifier IdentityVerifier) *Handler {
	return &Handler{registry, assignments, catalog, verifier}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
