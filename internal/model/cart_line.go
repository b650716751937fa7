package model

import "time"

// CartLine is one pending-purchase row in the `cart` table. A user has
// at most one line per book; a repeated add merges into the existing
// line's quantity instead of inserting a second row.
type CartLine struct {
	ID       uint64    `json:"cart_id"`  // cart.cart_id
	UserID   uint64    `json:"user_id"`  // cart.user_id
	BookID   uint64    `json:"book_id"`  // cart.book_id
	Quantity int64     `json:"quantity"` // cart.quantity
	AddedAt  time.Time `json:"added_at"` // cart.added_at
}

// CartLineDetail is a cart line joined with the current book record.
// Price here is the book's live price, not a frozen snapshot; prices
// only freeze when the line becomes an order item.
type CartLineDetail struct {
	CartLine
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}
