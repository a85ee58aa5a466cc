package models

import (
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// Request модели

// UpdateClientRequest запрос на обновление CRM-полей клиента.
// nil-поля остаются без изменений.
type UpdateClientRequest struct {
	Preferences *string `json:"preferences,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Response модели

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone,omitempty"`
	Preferences *string   `json:"preferences,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// Методы конвертации

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	return &ClientResponse{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		Phone:       c.Phone,
		Preferences: c.Preferences,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	if clients == nil {
		return &ClientListResponse{
			Clients: []ClientResponse{},
		}
	}

	resp := &ClientListResponse{
		Clients: make([]ClientResponse, len(clients)),
	}

	for i, client := range clients {
		if clientResp := FromDomainClient(client); clientResp != nil {
			resp.Clients[i] = *clientResp
		}
	}

	return resp
}
