package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[uint]Product

func (m mapLookup) Product(_ context.Context, id uint) (Product, error) {
	p, ok := m[id]
	if !ok {
		return Product{}, ErrUnknownProduct
	}
	return p, nil
}

func newTestCart() *Cart {
	return New(mapLookup{
		1: {ID: 1, Name: "Água", UnitPrice: decimal.RequireFromString("2.00"), Stock: 10},
		2: {ID: 2, Name: "Pão", UnitPrice: decimal.RequireFromString("0.50"), Stock: 3},
	})
}

func TestCart_AddMergesAndTotals(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1, 2))
	require.NoError(t, c.Add(ctx, 2, 1))
	require.NoError(t, c.Add(ctx, 1, 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].Product.ID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("6.50").Equal(c.Total()))
}

func TestCart_AddRejectsBadInput(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()

	assert.ErrorIs(t, c.Add(ctx, 1, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(ctx, 1, -2), ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(ctx, 99, 1), ErrUnknownProduct)
	assert.Empty(t, c.Lines())
}

func TestCart_StockCountsQuantityAlreadyInCart(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 2, 2))
	err := c.Add(ctx, 2, 2)
	assert.ErrorIs(t, err, ErrExceedsStock)
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	require.NoError(t, c.Add(ctx, 2, 1))
	assert.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestCart_Remove(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, 1, 1))
	require.NoError(t, c.Add(ctx, 2, 1))

	require.NoError(t, c.Remove(1))
	assert.ErrorIs(t, c.Remove(1), ErrNotInCart)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, uint(2), c.Lines()[0].Product.ID)
}

func TestCart_DoneOnEmptyCartKeepsBuilding(t *testing.T) {
	c := newTestCart()

	_, err := c.Done()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, Building, c.State())
}

func TestCart_DoneSubmitsPicksInOrder(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, 2, 1))
	require.NoError(t, c.Add(ctx, 1, 3))

	picks, err := c.Done()
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, uint(2), picks[0].ProductID)
	assert.Equal(t, 1, picks[0].Quantity)
	assert.Equal(t, uint(1), picks[1].ProductID)
	assert.Equal(t, 3, picks[1].Quantity)
	assert.Equal(t, Submitted, c.State())

	assert.ErrorIs(t, c.Add(ctx, 1, 1), ErrNotBuilding)
	assert.ErrorIs(t, c.Remove(1), ErrNotBuilding)
	assert.ErrorIs(t, c.Cancel(), ErrNotBuilding)
	_, err = c.Done()
	assert.ErrorIs(t, err, ErrNotBuilding)
}

func TestCart_Cancel(t *testing.T) {
	c := newTestCart()
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, 1, 1))

	require.NoError(t, c.Cancel())
	assert.Equal(t, Cancelled, c.State())
	assert.Empty(t, c.Lines())
	require.NoError(t, c.Cancel())

	assert.ErrorIs(t, c.Add(ctx, 1, 1), ErrNotBuilding)
	_, err := c.Done()
	assert.ErrorIs(t, err, ErrNotBuilding)
}
