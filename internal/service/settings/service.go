package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/internal/schedule"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/settings/models"
)

// Service сервис настроек студии: расписание работы и данные сайта
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetSettings возвращает все настройки студии одним ответом:
// расписание и данные сайта
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching studio settings")

	scheduleCfg, err := s.repo.GetScheduleConfig(ctx)
	if err != nil {
		s.logger.Error("GetSettings: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	siteCfg, err := s.repo.GetSiteConfig(ctx)
	if err != nil {
		s.logger.Error("GetSettings: failed to get site config: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return &models.SettingsResponse{
		Schedule: models.FromDomainScheduleConfig(scheduleCfg),
		Site:     models.FromDomainSiteConfig(siteCfg),
	}, nil
}

// UpdateSettings обновляет настройки студии.
// Переданные секции перезаписываются целиком; правила расписания
// сохраняются в одной транзакции, чтобы не остаться с половиной недели.
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating studio settings")

	if req.Schedule == nil && req.Site == nil {
		s.logger.Warn("UpdateSettings: empty update request")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Schedule != nil {
		if err := s.validateScheduleSettings(req.Schedule); err != nil {
			s.logger.Warn("UpdateSettings: schedule validation failed: %v", err)
			return nil, err
		}

		scheduleCfg, err := req.Schedule.ToDomainScheduleConfig()
		if err != nil {
			s.logger.Warn("UpdateSettings: schedule conversion failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		err = s.txManager.Do(ctx, func(ctx context.Context) error {
			return s.repo.UpdateScheduleConfig(ctx, scheduleCfg)
		})
		if err != nil {
			s.logger.Error("UpdateSettings: failed to save schedule config: %v", err)
			return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}
	}

	if req.Site != nil {
		if err := s.repo.UpdateSiteConfig(ctx, req.Site.ToDomainSiteConfig()); err != nil {
			s.logger.Error("UpdateSettings: failed to save site config: %v", err)
			return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateSettings: settings updated")
	return s.GetSettings(ctx)
}

// GetSiteInfo возвращает публичную информацию о студии для витрины:
// контакты и расписание по дням недели
func (s *Service) GetSiteInfo(ctx context.Context) (*models.SiteInfoResponse, error) {
	s.logger.Info("GetSiteInfo: fetching public site info")

	siteCfg, err := s.repo.GetSiteConfig(ctx)
	if err != nil {
		s.logger.Error("GetSiteInfo: failed to get site config: %v", err)
		return nil, fmt.Errorf("%w: GetSiteInfo - repository error: %v", ErrInternal, err)
	}

	scheduleCfg, err := s.repo.GetScheduleConfig(ctx)
	if err != nil {
		s.logger.Error("GetSiteInfo: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: GetSiteInfo - repository error: %v", ErrInternal, err)
	}

	scheduleDTO := models.FromDomainScheduleConfig(scheduleCfg)

	return &models.SiteInfoResponse{
		StudioName:   siteCfg.StudioName,
		Email:        siteCfg.Email,
		Phone:        siteCfg.Phone,
		WeekdayRules: scheduleDTO.WeekdayRules,
	}, nil
}

// GetScheduleConfig возвращает domain конфигурацию расписания.
// Используется расчетом слотов и созданием бронирования.
func (s *Service) GetScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.repo.GetScheduleConfig(ctx)
	if err != nil {
		s.logger.Error("GetScheduleConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetScheduleConfig - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

func (s *Service) validateScheduleSettings(dto *models.ScheduleSettingsDTO) error {
	if dto.BufferMinutes < domain.MinBufferMinutes || dto.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if err := validateTimeRange(dto.FallbackOpenTime, dto.FallbackCloseTime); err != nil {
		return fmt.Errorf("%w: fallback window: %v", ErrInvalidInput, err)
	}

	seenWeekdays := make(map[int]bool, len(dto.WeekdayRules))
	for _, rule := range dto.WeekdayRules {
		if rule.Weekday < 0 || rule.Weekday > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, rule.Weekday)
		}
		if seenWeekdays[rule.Weekday] {
			return fmt.Errorf("%w: duplicate rule for weekday %d", ErrInvalidInput, rule.Weekday)
		}
		seenWeekdays[rule.Weekday] = true

		if rule.Closed {
			continue
		}
		if err := validateTimeRange(rule.OpenTime, rule.CloseTime); err != nil {
			return fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, rule.Weekday, err)
		}
	}

	for _, exc := range dto.DateExceptions {
		if _, err := time.Parse(domain.DateFormat, exc.Date); err != nil {
			return fmt.Errorf("%w: invalid exception date %q", ErrInvalidInput, exc.Date)
		}
		if exc.Closed {
			continue
		}
		if exc.OpenTime == nil || exc.CloseTime == nil {
			return fmt.Errorf("%w: open exception %s requires openTime and closeTime", ErrInvalidInput, exc.Date)
		}
		if err := validateTimeRange(*exc.OpenTime, *exc.CloseTime); err != nil {
			return fmt.Errorf("%w: exception %s: %v", ErrInvalidInput, exc.Date, err)
		}
	}

	return nil
}

func validateTimeRange(openTime, closeTime string) error {
	openMin, err := schedule.ParseTimeToMinutes(openTime)
	if err != nil {
		return fmt.Errorf("invalid open time %q", openTime)
	}
	closeMin, err := schedule.ParseTimeToMinutes(closeTime)
	if err != nil {
		return fmt.Errorf("invalid close time %q", closeTime)
	}
	if openMin >= closeMin {
		return fmt.Errorf("open time %s must be before close time %s", openTime, closeTime)
	}
	return nil
}
