package get_site_info

import (
	"net/http"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/site-info
// Публичный endpoint: контакты студии и расписание по дням недели
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSiteInfo(r.Context())
	if err != nil {
		h.logger.Error("GET /site-info - Failed to get site info: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
