package entity

import "time"

type CartItem struct {
	Id        int       `db:"id"`
	UserId    string    `db:"user_id"`
	ProductId int       `db:"product_id"`
	Quantity  int       `db:"quantity"`
	AddedAt   time.Time `db:"added_at"`
}

// MergeCarts applies the sample-cart sync policy on login: the server-side
// cart wins whenever it is non-empty, otherwise the locally held cart is
// adopted wholesale. Quantities are never summed across the two sides.
func MergeCarts(server, local []CartItem) []CartItem {
	if len(server) > 0 {
		return server
	}
	return local
}
