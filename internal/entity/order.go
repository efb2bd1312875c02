package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderStatusRank orders the fulfilment lifecycle. Cancelled is reachable
// from any non-terminal status, every other move is forward-only.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPlaced:    0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

type Order struct {
	Id         int         `db:"id"`
	UUID       string      `db:"uuid"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
	Status     OrderStatus `db:"status"`
	LinkingKey string      `db:"linking_key"`
	OrderInsert
}

type OrderInsert struct {
	Name            string          `db:"name"`
	Email           string          `db:"email"`
	Company         string          `db:"company"`
	Phone           string          `db:"phone"`
	ShippingAddress string          `db:"shipping_address"`
	Total           decimal.Decimal `db:"total"`
	Items           []OrderItem
}

type OrderItem struct {
	Id          int             `db:"id"`
	OrderId     int             `db:"order_id"`
	ProductId   int             `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

type OrderFilters struct {
	Status   *OrderStatus
	Email    string
	DateFrom *time.Time
	DateTo   *time.Time
}

func ValidateOrderInsert(o *OrderInsert) error {
	o.Name = strings.TrimSpace(o.Name)
	o.Email = strings.TrimSpace(o.Email)
	o.ShippingAddress = strings.TrimSpace(o.ShippingAddress)

	if o.Name == "" {
		return &ValidationError{Message: "name is required"}
	}
	if o.Email == "" {
		return &ValidationError{Message: "email is required"}
	}
	if !isValidEmail(o.Email) {
		return &ValidationError{Message: "invalid email format"}
	}
	if o.ShippingAddress == "" {
		return &ValidationError{Message: "shipping address is required"}
	}
	if len(o.Items) == 0 {
		return &ValidationError{Message: "order must contain at least one item"}
	}
	for _, it := range o.Items {
		if it.ProductId <= 0 {
			return &ValidationError{Message: "order item product id is required"}
		}
		if it.Quantity <= 0 {
			return &ValidationError{Message: fmt.Sprintf("invalid quantity for product %d", it.ProductId)}
		}
	}
	return nil
}

func CanTransitionOrderStatus(from, to OrderStatus) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	fromRank, ok := orderStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
