package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotBookable возвращается, когда услуга неактивна
	ErrServiceNotBookable = errors.New("service is not bookable")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateInPast возвращается, когда дата уже прошла
	ErrDateInPast = errors.New("date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
