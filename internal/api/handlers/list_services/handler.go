package list_services

import (
	"net/http"
	"strconv"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
	"github.com/lotos-studio/LOTOS-BookingService/internal/api/middleware"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Публичная витрина видит только активные услуги.
// Администратор может запросить весь каталог через includeInactive=true.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if middleware.IsAdmin(r.Context()) {
		if v := r.URL.Query().Get("includeInactive"); v != "" {
			includeInactive, _ = strconv.ParseBool(v)
		}
	}

	result, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
