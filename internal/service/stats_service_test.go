package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"faktura/internal/domain"
	"faktura/internal/service"
	"faktura/mocks"
)

func setupStatsService() (*mocks.MockStatsRepo, *mocks.MockInvoiceRepo, service.StatsService) {
	statsRepo := new(mocks.MockStatsRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	clientRepo := new(mocks.MockClientRepo)
	svc := service.NewStatsService(statsRepo, invoiceRepo, clientRepo)
	return statsRepo, invoiceRepo, svc
}

func TestDashboard_DefaultsToCurrentYear(t *testing.T) {
	statsRepo, invoiceRepo, svc := setupStatsService()
	year := time.Now().Year()

	invoiceRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	statsRepo.On("Statistics", mock.Anything, year, 0).Return(&domain.DashboardStats{InvoiceCount: 4}, nil)

	stats, err := svc.Dashboard(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, year, stats.Year)
	assert.Equal(t, 4, stats.InvoiceCount)
}

func TestDashboard_BadMonth(t *testing.T) {
	_, _, svc := setupStatsService()

	_, err := svc.Dashboard(context.Background(), 2026, 13)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMonthlyRevenue_FillsGaps(t *testing.T) {
	statsRepo, invoiceRepo, svc := setupStatsService()

	invoiceRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	statsRepo.On("MonthlyRevenue", mock.Anything, 2026).Return([]domain.MonthlyRevenue{
		{Month: 3, TotalIssued: decimal.RequireFromString("150.00"), InvoiceCount: 2},
	}, nil)

	months, err := svc.MonthlyRevenue(context.Background(), 2026)
	require.NoError(t, err)

	require.Len(t, months, 12)
	assert.Equal(t, 1, months[0].Month)
	assert.True(t, months[0].TotalIssued.IsZero())
	assert.Equal(t, 2, months[2].InvoiceCount)
	assert.True(t, months[2].TotalIssued.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 12, months[11].Month)
}
