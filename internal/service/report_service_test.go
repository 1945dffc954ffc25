package service

import (
	"context"
	"testing"

	"cashdrawer/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_ZeroSales(t *testing.T) {
	f := newFixture(t)
	ana := f.employee(t, "Ana", "111")
	s := f.open(t, ana.ID)

	r, err := f.reports.ReportFor(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Zero(t, r.SaleCount)
	assert.True(t, r.GrossTotal.IsZero())
	assert.True(t, r.NetOfTaxTotal.IsZero())
	assert.True(t, r.TaxTotal.IsZero())
	assert.NotNil(t, r.PerEmployee)
	assert.Empty(t, r.PerEmployee)
	assert.Nil(t, r.ClosedAt)
}

func TestReport_PerEmployeeBreakdown(t *testing.T) {
	f := newFixture(t)
	ana := f.employee(t, "Ana", "111")
	bruno := f.employee(t, "Bruno", "222")
	agua := f.product(t, "Água", "2.00", 100)
	pao := f.product(t, "Pão", "0.50", 100)
	s := f.open(t, bruno.ID)
	ctx := context.Background()

	sell := func(employeeID uint, picks ...dto.Pick) {
		_, err := f.sales.Sell(ctx, employeeID, sellReq(s.ID, picks...))
		require.NoError(t, err)
	}
	sell(bruno.ID, dto.Pick{ProductID: agua.ID, Quantity: 3})                                           // 6.00
	sell(ana.ID, dto.Pick{ProductID: pao.ID, Quantity: 4})                                              // 2.00
	sell(bruno.ID, dto.Pick{ProductID: pao.ID, Quantity: 1}, dto.Pick{ProductID: agua.ID, Quantity: 1}) // 2.50

	closed, err := f.sessions.Close(ctx, s.ID)
	require.NoError(t, err)
	r := closed.Report

	assert.EqualValues(t, 3, r.SaleCount)
	assert.Equal(t, "10.50", r.GrossTotal.StringFixed(2))
	assert.Equal(t, "9.375", r.NetOfTaxTotal.Round(4).String())
	assert.Equal(t, "1.125", r.TaxTotal.Round(4).String())
	assert.Equal(t, "10.5", r.NetOfTaxTotal.Add(r.TaxTotal).Round(6).String())
	assert.Equal(t, "Bruno", r.OpenedByName)
	require.NotNil(t, r.ClosedAt)

	require.Len(t, r.PerEmployee, 2)
	assert.Equal(t, ana.ID, r.PerEmployee[0].EmployeeID)
	assert.Equal(t, "Ana", r.PerEmployee[0].EmployeeName)
	assert.EqualValues(t, 1, r.PerEmployee[0].SaleCount)
	assert.Equal(t, "2.00", r.PerEmployee[0].GrossSubtotal.StringFixed(2))
	assert.Equal(t, bruno.ID, r.PerEmployee[1].EmployeeID)
	assert.EqualValues(t, 2, r.PerEmployee[1].SaleCount)
	assert.Equal(t, "8.50", r.PerEmployee[1].GrossSubtotal.StringFixed(2))

	again, err := f.reports.ReportFor(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, r.GrossTotal.StringFixed(2), again.GrossTotal.StringFixed(2))
	assert.Equal(t, r.SaleCount, again.SaleCount)
}

func TestReport_UnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.ReportFor(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
