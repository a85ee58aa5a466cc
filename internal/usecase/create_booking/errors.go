package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotBookable возвращается, когда услуга неактивна
	ErrServiceNotBookable = errors.New("service is not bookable")

	// ErrStudioClosed возвращается, когда студия закрыта в указанную дату
	ErrStudioClosed = errors.New("studio is closed on this date")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateInPast возвращается, когда дата уже прошла
	ErrDateInPast = errors.New("date is in the past")

	// ErrInvalidStartTime возвращается при некорректном времени начала
	ErrInvalidStartTime = errors.New("invalid start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
