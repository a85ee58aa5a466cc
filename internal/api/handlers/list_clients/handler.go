package list_clients

import (
	"net/http"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/clients - Failed to list clients: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/clients - Clients listed: count=%d", len(result.Clients))
	handlers.RespondJSON(w, http.StatusOK, result)
}
