package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

func testOrderInsert(email string) *entity.OrderInsert {
	return &entity.OrderInsert{
		Name:            "Sample Buyer",
		Email:           email,
		Company:         "Acme Retail",
		Phone:           "+12025550190",
		ShippingAddress: "1 Main St, Springfield",
		Total:           decimal.NewFromInt(45),
		Items: []entity.OrderItem{
			{ProductId: 1, ProductName: "Classic Belt", Quantity: 1, UnitPrice: decimal.NewFromInt(45)},
		},
	}
}

func TestSampleOrders(t *testing.T) {
	db := newTestDB(t)

	os := db.Orders()
	ctx := context.Background()

	o, err := os.CreateOrder(ctx, testOrderInsert("buyer@acme.com"), "buyer@acme.com")
	require.NoError(t, err)
	assert.NotEmpty(t, o.UUID)
	assert.Equal(t, entity.OrderStatusPlaced, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Classic Belt", o.Items[0].ProductName)

	got, err := os.GetOrderByUUID(ctx, o.UUID)
	require.NoError(t, err)
	assert.Equal(t, o.Id, got.Id)

	mine, err := os.GetOrdersMine(ctx, "buyer@acme.com", "buyer@acme.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = os.GetOrderByUUID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	db := newTestDB(t)

	os := db.Orders()
	ctx := context.Background()

	o, err := os.CreateOrder(ctx, testOrderInsert("lifecycle@acme.com"), "lifecycle@acme.com")
	require.NoError(t, err)

	err = os.UpdateOrderStatus(ctx, o.UUID, entity.OrderStatusConfirmed)
	assert.NoError(t, err)

	err = os.UpdateOrderStatus(ctx, o.UUID, entity.OrderStatusPlaced)
	assert.ErrorIs(t, err, gerr.ErrInvalidTransition)

	// cancellation is reachable from any non-terminal status
	err = os.UpdateOrderStatus(ctx, o.UUID, entity.OrderStatusCancelled)
	assert.NoError(t, err)

	err = os.UpdateOrderStatus(ctx, o.UUID, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, gerr.ErrInvalidTransition)
}

func TestOrderStatusConcurrentUpdates(t *testing.T) {
	db := newTestDB(t)

	os := db.Orders()
	ctx := context.Background()

	o, err := os.CreateOrder(ctx, testOrderInsert("race@acme.com"), "race@acme.com")
	require.NoError(t, err)

	// each write is guarded on the status it validated, so racing staff
	// updates can never land a backwards move
	statuses := []entity.OrderStatus{
		entity.OrderStatusConfirmed,
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
	}
	errs := make([]error, len(statuses))
	var wg sync.WaitGroup
	for i, st := range statuses {
		wg.Add(1)
		go func(i int, st entity.OrderStatus) {
			defer wg.Done()
			errs[i] = os.UpdateOrderStatus(ctx, o.UUID, st)
		}(i, st)
	}
	wg.Wait()

	got, err := os.GetOrderByUUID(ctx, o.UUID)
	require.NoError(t, err)

	// the final status is never behind a transition that reported success
	for i, st := range statuses {
		if errs[i] == nil {
			assert.False(t, entity.CanTransitionOrderStatus(got.Status, st),
				"final status %s is behind committed status %s", got.Status, st)
		}
	}
}

func TestRelinkGuestOrders(t *testing.T) {
	db := newTestDB(t)

	os := db.Orders()
	ctx := context.Background()

	_, err := os.CreateOrder(ctx, testOrderInsert("guest3@acme.com"), "guest3@acme.com")
	require.NoError(t, err)

	userId := "b9a7c8f0-0000-4000-8000-000000000003"

	n, err := os.RelinkGuestOrders(ctx, "guest3@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = os.RelinkGuestOrders(ctx, "guest3@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
