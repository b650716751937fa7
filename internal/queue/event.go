// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published after a checkout commits. It carries
// enough for downstream consumers (fulfilment, notifications) to act
// without querying the primary database.
type OrderPlacedEvent struct {
	OrderID       uint64  `json:"order_id"`
	PaymentID     uint64  `json:"payment_id"`
	UserID        uint64  `json:"user_id"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	ItemCount     int     `json:"item_count"`
	PlacedAt      string  `json:"placed_at"`
}
