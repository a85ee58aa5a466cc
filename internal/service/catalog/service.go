package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	serviceRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/service"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг студии
type Service struct {
	repo   ServiceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List получает список услуг.
// Публичная витрина видит только активные, админка - весь каталог.
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, includeInactive=%t", includeInactive)

	services, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create создает новую услугу в каталоге
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%s", req.Name)

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: validation failed for service name=%s: %v", req.Name, err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToDomainService())
	if err != nil {
		s.logger.Error("Create: repository error for service name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу: nil-поля запроса не трогаются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	req.ApplyTo(service)

	if err := validateServiceFields(service.Name, service.DurationMinutes, service.Price); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.repo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found during update", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Delete мягко удаляет услугу из каталога.
// История бронирований сохраняет денормализованные название и цену.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deactivating service id=%d", id)

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated service id=%d", id)
	return nil
}

func validateServiceFields(name string, durationMinutes int, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
