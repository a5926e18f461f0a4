package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"faktura/internal/domain"
	"faktura/internal/port"
)

// ClientInput is the DTO for creating or updating a counterparty.
type ClientInput struct {
	CompanyName      string `json:"company_name"`
	RegistrationCode string `json:"registration_code"`
	VATCode          string `json:"vat_code"`
	Address          string `json:"address"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ClientType       string `json:"client_type"`
}

// ClientService manages the counterparty register.
type ClientService interface {
	Create(ctx context.Context, input *ClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, f *domain.ClientFilter) ([]domain.Client, int, error)
	Update(ctx context.Context, id uuid.UUID, input *ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	clientRepo  port.ClientRepository
	invoiceRepo port.InvoiceRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(clientRepo port.ClientRepository, invoiceRepo port.InvoiceRepository) ClientService {
	return &clientService{clientRepo: clientRepo, invoiceRepo: invoiceRepo}
}

func (s *clientService) validate(input *ClientInput) (domain.ClientType, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return "", domain.Validationf("company_name", "company_name is required")
	}
	clientType := domain.ClientTypeClient
	if input.ClientType != "" {
		parsed, ok := domain.ParseClientType(input.ClientType)
		if !ok {
			return "", domain.Validationf("client_type", "unknown client type %q", input.ClientType)
		}
		clientType = parsed
	}
	return clientType, nil
}

func (s *clientService) Create(ctx context.Context, input *ClientInput) (*domain.Client, error) {
	clientType, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	client := &domain.Client{
		ID:               uuid.New(),
		CompanyName:      strings.TrimSpace(input.CompanyName),
		RegistrationCode: input.RegistrationCode,
		VATCode:          input.VATCode,
		Address:          input.Address,
		Email:            input.Email,
		Phone:            input.Phone,
		ClientType:       clientType,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, f *domain.ClientFilter) ([]domain.Client, int, error) {
	if f.ClientType != "" {
		if _, ok := domain.ParseClientType(string(f.ClientType)); !ok {
			return nil, 0, domain.Validationf("client_type", "unknown client type %q", string(f.ClientType))
		}
	}
	return s.clientRepo.List(ctx, f)
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, input *ClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	clientType, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	client.CompanyName = strings.TrimSpace(input.CompanyName)
	client.RegistrationCode = input.RegistrationCode
	client.VATCode = input.VATCode
	client.Address = input.Address
	client.Email = input.Email
	client.Phone = input.Phone
	client.ClientType = clientType
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client. Clients referenced by invoices are protected;
// the invoices keep their history and the caller gets ErrClientHasInvoices.
func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.invoiceRepo.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrClientHasInvoices
	}
	return s.clientRepo.Delete(ctx, id)
}
