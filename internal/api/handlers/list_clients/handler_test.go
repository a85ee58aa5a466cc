package list_clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotos-studio/LOTOS-BookingService/internal/service/clients"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/clients/models"
)

type fakeClientService struct {
	result *models.ClientListResponse
	err    error
}

func (f *fakeClientService) List(_ context.Context) (*models.ClientListResponse, error) {
	return f.result, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_ReturnsClientList(t *testing.T) {
	svc := &fakeClientService{
		result: &models.ClientListResponse{
			Clients: []models.ClientResponse{
				{ID: 1, Email: "anna@example.com", Name: "Анна"},
				{ID: 2, Email: "boris@example.com", Name: "Борис"},
			},
		},
	}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/clients", nil)
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ClientListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Clients, 2)
	assert.Equal(t, "anna@example.com", resp.Clients[0].Email)
}

func TestHandle_EmptyList(t *testing.T) {
	svc := &fakeClientService{result: &models.ClientListResponse{Clients: []models.ClientResponse{}}}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/clients", nil)
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clients":[]}`, rec.Body.String())
}

func TestHandle_ServiceError(t *testing.T) {
	svc := &fakeClientService{err: clients.ErrInternal}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/clients", nil)
	h.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
