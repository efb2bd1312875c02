package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() OrderInsert {
	return OrderInsert{
		Name:            "Dana Moore",
		Email:           "dana@boutique.io",
		ShippingAddress: "12 Tannery Row, Florence",
		Items: []OrderItem{
			{ProductId: 1, Quantity: 2},
		},
	}
}

func TestValidateOrderInsert(t *testing.T) {
	o := validOrder()
	require.NoError(t, ValidateOrderInsert(&o))

	o = validOrder()
	o.Items = nil
	assert.Error(t, ValidateOrderInsert(&o))

	o = validOrder()
	o.Items[0].Quantity = 0
	assert.Error(t, ValidateOrderInsert(&o))

	o = validOrder()
	o.ShippingAddress = ""
	assert.Error(t, ValidateOrderInsert(&o))
}

func TestCanTransitionOrderStatus(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusPlaced, OrderStatusConfirmed))
	assert.True(t, CanTransitionOrderStatus(OrderStatusPlaced, OrderStatusShipped))
	assert.True(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusDelivered))

	// cancelled is reachable from any non-terminal status
	assert.True(t, CanTransitionOrderStatus(OrderStatusPlaced, OrderStatusCancelled))
	assert.True(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusCancelled))

	assert.False(t, CanTransitionOrderStatus(OrderStatusDelivered, OrderStatusCancelled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCancelled, OrderStatusConfirmed))
	assert.False(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusConfirmed))
	assert.False(t, CanTransitionOrderStatus(OrderStatusConfirmed, OrderStatusConfirmed))
}
