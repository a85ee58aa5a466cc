package revenue_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

const (
	msgMissingPeriod = "необходимо указать параметры startDate и endDate"
	msgInvalidDate   = "некорректный формат даты, ожидается ГГГГ-ММ-ДД"
	msgInvalidPeriod = "дата окончания периода раньше даты начала"
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

// Handle GET /api/v1/admin/reports/revenue?startDate=2025-10-01&endDate=2025-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /admin/reports/revenue - Missing period parameters")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		h.logger.Warn("GET /admin/reports/revenue - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		h.logger.Warn("GET /admin/reports/revenue - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.RevenueReport(r.Context(), &models.RevenueReportRequest{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidPeriod):
			h.logger.Warn("GET /admin/reports/revenue - Invalid period: start=%s, end=%s",
				startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/reports/revenue - Failed to build report: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reports/revenue - Report built: start=%s, end=%s, bookings=%d",
		startDateStr, endDateStr, result.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
