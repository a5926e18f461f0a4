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

func setupSettingsService() (*mocks.MockCompanyRepo, *mocks.MockSeriesRepo, *mocks.MockSettingRepo, service.SettingsService) {
	companyRepo := new(mocks.MockCompanyRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingRepo := new(mocks.MockSettingRepo)
	svc := service.NewSettingsService(companyRepo, seriesRepo, settingRepo)
	return companyRepo, seriesRepo, settingRepo, svc
}

func TestCreateSeries(t *testing.T) {
	_, seriesRepo, _, svc := setupSettingsService()

	seriesRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InvoiceSeries")).Return(nil)

	series, err := svc.CreateSeries(context.Background(), &service.SeriesInput{
		SeriesCode:    " fak ",
		InitialNumber: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, "FAK", series.SeriesCode, "codes are normalized to upper case")
	assert.Equal(t, int64(100), series.CurrentNumber)
	assert.True(t, series.IsActive)
}

func TestCreateSeries_NegativeInitialNumber(t *testing.T) {
	_, seriesRepo, _, svc := setupSettingsService()

	_, err := svc.CreateSeries(context.Background(), &service.SeriesInput{
		SeriesCode:    "FAK",
		InitialNumber: -1,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	seriesRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateSeries_DeactivateOnly(t *testing.T) {
	_, seriesRepo, _, svc := setupSettingsService()
	series := &domain.InvoiceSeries{ID: uuid.New(), SeriesCode: "INV", CurrentNumber: 7, IsActive: true}

	seriesRepo.On("GetByID", mock.Anything, series.ID).Return(series, nil)
	seriesRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.InvoiceSeries")).Return(nil)

	inactive := false
	updated, err := svc.UpdateSeries(context.Background(), series.ID, &service.SeriesUpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.Equal(t, int64(7), updated.CurrentNumber, "the counter never moves through updates")
	assert.Equal(t, "INV", updated.SeriesCode)
}

func TestDeleteBankAccount_DefaultProtected(t *testing.T) {
	companyRepo, _, _, svc := setupSettingsService()
	account := &domain.BankAccount{ID: uuid.New(), AccountNumber: "LT12", IsDefault: true}

	companyRepo.On("GetBankAccount", mock.Anything, account.ID).Return(account, nil)

	err := svc.DeleteBankAccount(context.Background(), account.ID)
	assert.ErrorIs(t, err, domain.ErrDefaultAccount)
	companyRepo.AssertNotCalled(t, "DeleteBankAccount", mock.Anything, mock.Anything)
}

func TestUpdateCompany(t *testing.T) {
	companyRepo, _, _, svc := setupSettingsService()

	companyRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.CompanyInfo")).Return(nil)

	company, err := svc.UpdateCompany(context.Background(), &service.CompanyInput{
		CompanyName: "UAB Faktura",
		TaxID:       "123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "UAB Faktura", company.CompanyName)
}

func TestSetSetting_EmptyKey(t *testing.T) {
	_, _, settingRepo, svc := setupSettingsService()

	err := svc.SetSetting(context.Background(), "  ", "value")
	assert.ErrorIs(t, err, domain.ErrValidation)
	settingRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
