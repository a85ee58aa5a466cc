package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/lotos-studio/LOTOS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "дата уже прошла"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotBookable = "услуга недоступна для записи"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?serviceId=&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	dateStr := r.URL.Query().Get("date")

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotBookable):
			h.logger.Warn("GET /available-slots - Service not bookable: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /available-slots - Date in past: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /available-slots - Failed: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots: service_id=%d, date=%s",
		len(result.Slots), serviceID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
