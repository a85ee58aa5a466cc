package models

import (
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги в каталоге
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	SortOrder       int     `json:"sortOrder,omitempty"`
	Category        *string `json:"category,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	Featured        bool    `json:"featured,omitempty"`
}

// ToDomainService конвертирует request в domain модель.
// Новая услуга сразу активна.
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Active:          true,
		SortOrder:       r.SortOrder,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
		Featured:        r.Featured,
	}
}

// UpdateServiceRequest запрос на частичное обновление услуги.
// nil-поля остаются без изменений.
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	SortOrder       *int     `json:"sortOrder,omitempty"`
	Category        *string  `json:"category,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Featured        *bool    `json:"featured,omitempty"`
}

// ApplyTo накладывает непустые поля запроса на domain модель
func (r *UpdateServiceRequest) ApplyTo(service *domain.Service) {
	if r.Name != nil {
		service.Name = *r.Name
	}
	if r.Description != nil {
		service.Description = r.Description
	}
	if r.DurationMinutes != nil {
		service.DurationMinutes = *r.DurationMinutes
	}
	if r.Price != nil {
		service.Price = *r.Price
	}
	if r.Active != nil {
		service.Active = *r.Active
	}
	if r.SortOrder != nil {
		service.SortOrder = *r.SortOrder
	}
	if r.Category != nil {
		service.Category = r.Category
	}
	if r.ImageURL != nil {
		service.ImageURL = r.ImageURL
	}
	if r.Featured != nil {
		service.Featured = *r.Featured
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	SortOrder       int       `json:"sortOrder"`
	Category        *string   `json:"category,omitempty"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
		SortOrder:       s.SortOrder,
		Category:        s.Category,
		ImageURL:        s.ImageURL,
		Featured:        s.Featured,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{
			Services: []ServiceResponse{},
		}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services[i] = *serviceResp
		}
	}

	return resp
}
