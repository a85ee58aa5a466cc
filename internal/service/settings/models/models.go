package models

import (
	"sort"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/internal/schedule"
)

// WeekdayRuleDTO правило работы для одного дня недели (0=воскресенье .. 6=суббота)
type WeekdayRuleDTO struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	Closed    bool   `json:"closed"`
}

// DateExceptionDTO исключение из расписания для конкретной даты
type DateExceptionDTO struct {
	Date      string  `json:"date"` // "YYYY-MM-DD"
	Closed    bool    `json:"closed"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// ScheduleSettingsDTO конфигурация расписания студии
type ScheduleSettingsDTO struct {
	BufferMinutes     int                `json:"bufferMinutes"`
	FallbackOpenTime  string             `json:"fallbackOpenTime"`  // "09:00"
	FallbackCloseTime string             `json:"fallbackCloseTime"` // "18:00"
	WeekdayRules      []WeekdayRuleDTO   `json:"weekdayRules"`
	DateExceptions    []DateExceptionDTO `json:"dateExceptions"`
}

// SiteSettingsDTO общие настройки студии
type SiteSettingsDTO struct {
	StudioName string `json:"studioName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// SettingsResponse комбинированный ответ со всеми настройками студии
type SettingsResponse struct {
	Schedule ScheduleSettingsDTO `json:"schedule"`
	Site     SiteSettingsDTO     `json:"site"`
}

// UpdateSettingsRequest запрос на обновление настроек.
// Обновляются только переданные секции.
type UpdateSettingsRequest struct {
	Schedule *ScheduleSettingsDTO `json:"schedule,omitempty"`
	Site     *SiteSettingsDTO     `json:"site,omitempty"`
}

// SiteInfoResponse публичная информация о студии для витрины
type SiteInfoResponse struct {
	StudioName   string           `json:"studioName"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	WeekdayRules []WeekdayRuleDTO `json:"weekdayRules"`
}

// Методы конвертации

// FromDomainScheduleConfig конвертирует domain конфигурацию в DTO
func FromDomainScheduleConfig(cfg *domain.ScheduleConfig) ScheduleSettingsDTO {
	dto := ScheduleSettingsDTO{
		BufferMinutes:     cfg.BufferMinutes,
		FallbackOpenTime:  schedule.FormatMinutes(cfg.FallbackStartMinute),
		FallbackCloseTime: schedule.FormatMinutes(cfg.FallbackEndMinute),
		WeekdayRules:      make([]WeekdayRuleDTO, 0, len(cfg.WeekdayRules)),
		DateExceptions:    make([]DateExceptionDTO, 0, len(cfg.DateExceptions)),
	}

	for _, rule := range cfg.WeekdayRules {
		dto.WeekdayRules = append(dto.WeekdayRules, WeekdayRuleDTO{
			Weekday:   rule.Weekday,
			OpenTime:  rule.OpenTime,
			CloseTime: rule.CloseTime,
			Closed:    rule.Closed,
		})
	}

	for _, exc := range cfg.DateExceptions {
		dto.DateExceptions = append(dto.DateExceptions, DateExceptionDTO{
			Date:      exc.Date,
			Closed:    exc.Closed,
			OpenTime:  exc.OpenTime,
			CloseTime: exc.CloseTime,
		})
	}

	// Для стабильного ответа API
	sort.Slice(dto.WeekdayRules, func(i, j int) bool {
		return dto.WeekdayRules[i].Weekday < dto.WeekdayRules[j].Weekday
	})
	sort.Slice(dto.DateExceptions, func(i, j int) bool {
		return dto.DateExceptions[i].Date < dto.DateExceptions[j].Date
	})

	return dto
}

// ToDomainScheduleConfig конвертирует DTO в domain конфигурацию.
// Времена уже провалидированы сервисом.
func (d *ScheduleSettingsDTO) ToDomainScheduleConfig() (*domain.ScheduleConfig, error) {
	fallbackStart, err := schedule.ParseTimeToMinutes(d.FallbackOpenTime)
	if err != nil {
		return nil, err
	}
	fallbackEnd, err := schedule.ParseTimeToMinutes(d.FallbackCloseTime)
	if err != nil {
		return nil, err
	}

	cfg := &domain.ScheduleConfig{
		BufferMinutes:       d.BufferMinutes,
		FallbackStartMinute: fallbackStart,
		FallbackEndMinute:   fallbackEnd,
		WeekdayRules:        make([]domain.WeekdayRule, 0, len(d.WeekdayRules)),
		DateExceptions:      make(map[string]domain.DateException, len(d.DateExceptions)),
	}

	for _, rule := range d.WeekdayRules {
		cfg.WeekdayRules = append(cfg.WeekdayRules, domain.WeekdayRule{
			Weekday:   rule.Weekday,
			OpenTime:  rule.OpenTime,
			CloseTime: rule.CloseTime,
			Closed:    rule.Closed,
		})
	}

	for _, exc := range d.DateExceptions {
		cfg.DateExceptions[exc.Date] = domain.DateException{
			Date:      exc.Date,
			Closed:    exc.Closed,
			OpenTime:  exc.OpenTime,
			CloseTime: exc.CloseTime,
		}
	}

	return cfg, nil
}

// FromDomainSiteConfig конвертирует domain настройки сайта в DTO
func FromDomainSiteConfig(cfg *domain.SiteConfig) SiteSettingsDTO {
	return SiteSettingsDTO{
		StudioName: cfg.StudioName,
		Email:      cfg.Email,
		Phone:      cfg.Phone,
	}
}

// ToDomainSiteConfig конвертирует DTO в domain настройки сайта
func (d *SiteSettingsDTO) ToDomainSiteConfig() *domain.SiteConfig {
	return &domain.SiteConfig{
		StudioName: d.StudioName,
		Email:      d.Email,
		Phone:      d.Phone,
	}
}
