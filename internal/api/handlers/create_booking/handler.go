package create_booking

import (
	"errors"
	"net/http"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
	"github.com/lotos-studio/LOTOS-BookingService/internal/api/middleware"
	createBooking "github.com/lotos-studio/LOTOS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingClientEmail = "отсутствует email клиента"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotBookable = "услуга недоступна для записи"
	msgStudioClosed       = "студия закрыта в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateInPast         = "дата бронирования уже прошла"
	msgInvalidStartTime   = "некорректное время начала сессии"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientEmail, ok := middleware.GetClientEmail(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing client email")
		handlers.RespondUnauthorized(w, msgMissingClientEmail)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientEmail)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client=%s, date=%s, time=%s",
				clientEmail, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotBookable):
			h.logger.Warn("POST /bookings - Service not bookable: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, createBooking.ErrStudioClosed):
			h.logger.Warn("POST /bookings - Studio closed: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgStudioClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: %s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidStartTime):
			h.logger.Warn("POST /bookings - Invalid start time: %s", req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client=%s, error=%v", clientEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client=%s",
		result.ID, clientEmail)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
