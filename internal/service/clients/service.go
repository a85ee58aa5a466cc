package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	clientRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/client"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/clients/models"
)

// Service сервис клиентской базы (CRM)
type Service struct {
	repo   ClientRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(repo ClientRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List получает всех клиентов студии
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	s.logger.Info("List: fetching clients")

	clients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d clients", len(clients))
	return models.FromDomainClientList(clients), nil
}

// Update обновляет CRM-поля клиента: предпочтения и заметки администратора
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Update: updating client id=%d", id)

	if req.Preferences == nil && req.Notes == nil {
		s.logger.Warn("Update: empty update request for client id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Preferences != nil && len(*req.Preferences) > domain.MaxNotesLength {
		s.logger.Warn("Update: preferences too long for client id=%d", id)
		return nil, fmt.Errorf("%w: preferences exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("Update: notes too long for client id=%d", id)
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := s.repo.UpdateCRM(ctx, id, req.Preferences, req.Notes); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Update: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated client id=%d", id)
	return models.FromDomainClient(client), nil
}
