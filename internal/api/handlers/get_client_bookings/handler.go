package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
	"github.com/lotos-studio/LOTOS-BookingService/internal/api/middleware"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

const (
	msgMissingClientEmail = "отсутствует email клиента"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/my/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, ok := middleware.GetClientEmail(r.Context())
	if !ok {
		h.logger.Warn("GET /my/bookings - Missing client email")
		handlers.RespondUnauthorized(w, msgMissingClientEmail)
		return
	}

	req := &models.GetClientBookingsRequest{ClientEmail: clientEmail}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /my/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /my/bookings - Failed to get bookings: client=%s, error=%v", clientEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /my/bookings - Bookings retrieved successfully: client=%s, count=%d",
		clientEmail, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
