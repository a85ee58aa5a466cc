package domain

import "time"

// Service услуга из каталога студии
// (массаж, ритуал, процедура)
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	SortOrder       int
	Category        *string
	ImageURL        *string
	Featured        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable возвращает true, если на услугу можно записаться
func (s *Service) IsBookable() bool {
	return s.Active && s.DurationMinutes > 0
}
