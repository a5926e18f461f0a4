package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"faktura/internal/domain"
	"faktura/internal/service"
	"faktura/mocks"
)

func setupClientService() (*mocks.MockClientRepo, *mocks.MockInvoiceRepo, service.ClientService) {
	clientRepo := new(mocks.MockClientRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewClientService(clientRepo, invoiceRepo)
	return clientRepo, invoiceRepo, svc
}

func TestCreateClient(t *testing.T) {
	clientRepo, _, svc := setupClientService()

	clientRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Client")).Return(nil)

	client, err := svc.Create(context.Background(), &service.ClientInput{
		CompanyName: "  UAB Testas  ",
		Email:       "info@testas.lt",
	})
	require.NoError(t, err)

	assert.Equal(t, "UAB Testas", client.CompanyName)
	assert.Equal(t, domain.ClientTypeClient, client.ClientType, "type defaults to client")
	assert.NotEqual(t, uuid.Nil, client.ID)
}

func TestCreateClient_MissingName(t *testing.T) {
	clientRepo, _, svc := setupClientService()

	_, err := svc.Create(context.Background(), &service.ClientInput{CompanyName: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	clientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateClient_BadType(t *testing.T) {
	_, _, svc := setupClientService()

	_, err := svc.Create(context.Background(), &service.ClientInput{
		CompanyName: "UAB Testas",
		ClientType:  "partner",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteClient_WithInvoicesBlocked(t *testing.T) {
	clientRepo, invoiceRepo, svc := setupClientService()
	client := &domain.Client{ID: uuid.New(), CompanyName: "UAB Testas"}

	clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	invoiceRepo.On("CountByClient", mock.Anything, client.ID).Return(3, nil)

	err := svc.Delete(context.Background(), client.ID)
	assert.ErrorIs(t, err, domain.ErrClientHasInvoices)
	clientRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteClient(t *testing.T) {
	clientRepo, invoiceRepo, svc := setupClientService()
	client := &domain.Client{ID: uuid.New(), CompanyName: "UAB Testas"}

	clientRepo.On("GetByID", mock.Anything, client.ID).Return(client, nil)
	invoiceRepo.On("CountByClient", mock.Anything, client.ID).Return(0, nil)
	clientRepo.On("Delete", mock.Anything, client.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), client.ID))
	clientRepo.AssertExpectations(t)
}
