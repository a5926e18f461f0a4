package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"faktura/internal/domain"
	"faktura/internal/port"
)

// CompanyInput is the DTO for updating the seller details.
type CompanyInput struct {
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// BankAccountInput is the DTO for creating or updating a bank account.
type BankAccountInput struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IsDefault     bool   `json:"is_default"`
}

// SeriesInput is the DTO for creating an invoice series. The counter starts
// at InitialNumber so imported books can continue their numbering.
type SeriesInput struct {
	SeriesCode    string `json:"series_code"`
	Description   string `json:"description"`
	InitialNumber int64  `json:"initial_number"`
}

// SeriesUpdateInput changes the mutable parts of a series. The code and the
// counter are fixed for life.
type SeriesUpdateInput struct {
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// SettingsService covers company details, bank accounts, numbering series,
// and the free-form settings store.
type SettingsService interface {
	GetCompany(ctx context.Context) (*domain.CompanyInfo, error)
	UpdateCompany(ctx context.Context, input *CompanyInput) (*domain.CompanyInfo, error)

	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, input *BankAccountInput) (*domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, id uuid.UUID, input *BankAccountInput) (*domain.BankAccount, error)
	SetDefaultBankAccount(ctx context.Context, id uuid.UUID) error
	DeleteBankAccount(ctx context.Context, id uuid.UUID) error

	ListSeries(ctx context.Context) ([]domain.InvoiceSeries, error)
	CreateSeries(ctx context.Context, input *SeriesInput) (*domain.InvoiceSeries, error)
	UpdateSeries(ctx context.Context, id uuid.UUID, input *SeriesUpdateInput) (*domain.InvoiceSeries, error)

	ListSettings(ctx context.Context) ([]domain.Setting, error)
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	SetSetting(ctx context.Context, key, value string) error
}

type settingsService struct {
	companyRepo port.CompanyRepository
	seriesRepo  port.SeriesRepository
	settingRepo port.SettingRepository
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(
	companyRepo port.CompanyRepository,
	seriesRepo port.SeriesRepository,
	settingRepo port.SettingRepository,
) SettingsService {
	return &settingsService{
		companyRepo: companyRepo,
		seriesRepo:  seriesRepo,
		settingRepo: settingRepo,
	}
}

func (s *settingsService) GetCompany(ctx context.Context) (*domain.CompanyInfo, error) {
	return s.companyRepo.Get(ctx)
}

func (s *settingsService) UpdateCompany(ctx context.Context, input *CompanyInput) (*domain.CompanyInfo, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, domain.Validationf("company_name", "company_name is required")
	}
	company := &domain.CompanyInfo{
		CompanyName: strings.TrimSpace(input.CompanyName),
		TaxID:       input.TaxID,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
	}
	if err := s.companyRepo.Upsert(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *settingsService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.companyRepo.ListBankAccounts(ctx)
}

func (s *settingsService) CreateBankAccount(ctx context.Context, input *BankAccountInput) (*domain.BankAccount, error) {
	if strings.TrimSpace(input.AccountNumber) == "" {
		return nil, domain.Validationf("account_number", "account_number is required")
	}
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	account := &domain.BankAccount{
		ID:            uuid.New(),
		CompanyID:     company.ID,
		BankName:      input.BankName,
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		IsDefault:     input.IsDefault,
	}
	if err := s.companyRepo.CreateBankAccount(ctx, account); err != nil {
		return nil, err
	}
	if account.IsDefault {
		if err := s.companyRepo.SetDefaultBankAccount(ctx, account.ID); err != nil {
			return nil, err
		}
	}
	return account, nil
}

func (s *settingsService) UpdateBankAccount(ctx context.Context, id uuid.UUID, input *BankAccountInput) (*domain.BankAccount, error) {
	account, err := s.companyRepo.GetBankAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.AccountNumber) == "" {
		return nil, domain.Validationf("account_number", "account_number is required")
	}
	account.BankName = input.BankName
	account.AccountNumber = strings.TrimSpace(input.AccountNumber)
	if err := s.companyRepo.UpdateBankAccount(ctx, account); err != nil {
		return nil, err
	}
	if input.IsDefault && !account.IsDefault {
		if err := s.companyRepo.SetDefaultBankAccount(ctx, account.ID); err != nil {
			return nil, err
		}
		account.IsDefault = true
	}
	return account, nil
}

func (s *settingsService) SetDefaultBankAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetBankAccount(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.SetDefaultBankAccount(ctx, id)
}

// DeleteBankAccount refuses to remove the default account so an invoice is
// never rendered without payment details. Flag another account first.
func (s *settingsService) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.companyRepo.GetBankAccount(ctx, id)
	if err != nil {
		return err
	}
	if account.IsDefault {
		return domain.ErrDefaultAccount
	}
	return s.companyRepo.DeleteBankAccount(ctx, id)
}

func (s *settingsService) ListSeries(ctx context.Context) ([]domain.InvoiceSeries, error) {
	return s.seriesRepo.List(ctx)
}

func (s *settingsService) CreateSeries(ctx context.Context, input *SeriesInput) (*domain.InvoiceSeries, error) {
	code := strings.ToUpper(strings.TrimSpace(input.SeriesCode))
	if code == "" {
		return nil, domain.Validationf("series_code", "series_code is required")
	}
	if input.InitialNumber < 0 {
		return nil, domain.Validationf("initial_number", "initial_number cannot be negative")
	}
	series := &domain.InvoiceSeries{
		ID:            uuid.New(),
		SeriesCode:    code,
		Description:   input.Description,
		CurrentNumber: input.InitialNumber,
		IsActive:      true,
	}
	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *settingsService) UpdateSeries(ctx context.Context, id uuid.UUID, input *SeriesUpdateInput) (*domain.InvoiceSeries, error) {
	series, err := s.seriesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		series.Description = *input.Description
	}
	if input.IsActive != nil {
		series.IsActive = *input.IsActive
	}
	if err := s.seriesRepo.Update(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingRepo.List(ctx)
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settingRepo.Get(ctx, key)
}

func (s *settingsService) SetSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return domain.Validationf("key", "key is required")
	}
	return s.settingRepo.Set(ctx, key, value)
}
