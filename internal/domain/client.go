package domain

import "time"

// Client клиент студии (запись CRM).
// Создается автоматически при первом бронировании.
type Client struct {
	ID          int64
	Email       string
	Name        string
	Phone       *string
	Preferences *string // Предпочтения клиента (давление, зоны, аромат)
	Notes       *string // Заметки администратора
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
