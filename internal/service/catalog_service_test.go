package service

import (
	"context"
	"testing"

	"cashdrawer/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RegisterValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []dto.CreateProductRequest{
		{Name: "", UnitPrice: dec("1"), StockQuantity: 1},
		{Name: "Água", UnitPrice: dec("-0.01"), StockQuantity: 1},
		{Name: "Água", UnitPrice: dec("1"), StockQuantity: -1},
		{Name: "Água", UnitPrice: dec("1.333"), StockQuantity: 1},
	}
	for _, req := range cases {
		_, err := f.catalog.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}

	free := f.product(t, "Brinde", "0", 0)
	assert.True(t, free.UnitPrice.IsZero())

	// trailing zeros beyond the column scale are still a 2-place price
	padded := f.product(t, "Sal", "1.2500", 1)
	assert.Equal(t, "1.25", padded.UnitPrice.StringFixed(2))
}

func TestCatalog_UpdatePriceRejectsSubCentPrices(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Água", "2.00", 10)
	ctx := context.Background()

	_, err := f.catalog.UpdatePrice(ctx, p.ID, dec("2.005"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.catalog.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.00", got.UnitPrice.StringFixed(2))
}

func TestCatalog_ListInCreationOrder(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Zebra", "1.00", 1)
	f.product(t, "Abacate", "2.00", 2)

	list, err := f.catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Zebra", list[0].Name)
	assert.Equal(t, "Abacate", list[1].Name)
}

func TestCatalog_GetNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.Get(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.catalog.LookupPrice(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_UpdatePrice(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Água", "2.00", 10)
	ctx := context.Background()

	updated, err := f.catalog.UpdatePrice(ctx, p.ID, dec("2.50"))
	require.NoError(t, err)
	assert.Equal(t, "2.50", updated.UnitPrice.StringFixed(2))
	assert.Equal(t, 10, updated.StockQuantity)

	lookup, err := f.catalog.LookupPrice(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.50", lookup.UnitPrice.StringFixed(2))

	_, err = f.catalog.UpdatePrice(ctx, p.ID, dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.catalog.UpdatePrice(ctx, 999, dec("1"))
	assert.ErrorIs(t, err, ErrNotFound)
}
