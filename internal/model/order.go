package model

import "time"

// Order mirrors the `orders` table.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user.
//  TotalAmount – total of the order, frozen at creation time.
//  Status      – free-form status string, defaults to "Pending".
//  CreatedAt   – creation timestamp.
type Order struct {
	ID          uint64    `json:"order_id"`     // orders.order_id
	UserID      uint64    `json:"user_id"`      // orders.user_id
	TotalAmount float64   `json:"total_amount"` // orders.total_amount
	Status      string    `json:"order_status"` // orders.order_status
	CreatedAt   time.Time `json:"created_at"`   // orders.created_at
}

// OrderItem mirrors the `order_items` table. Price is the unit price
// captured when the order was placed; later changes to books.price
// must not alter it.
type OrderItem struct {
	ID       uint64  `json:"order_item_id"` // order_items.order_item_id
	OrderID  uint64  `json:"order_id"`      // order_items.order_id
	BookID   uint64  `json:"book_id"`       // order_items.book_id
	Quantity int64   `json:"quantity"`      // order_items.quantity
	Price    float64 `json:"price"`         // order_items.price
}

// OrderItemDetail is an order item joined with the referenced book's title.
type OrderItemDetail struct {
	OrderItem
	Title string `json:"title"`
}

// OrderSummary is an order joined with the owning username, as returned
// by the admin order listing.
type OrderSummary struct {
	Order
	Username string `json:"username"`
}
