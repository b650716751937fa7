package model

// Payment mirrors the `payments` table. There is no gateway behind it:
// checkout records the settlement with status "Completed" in the same
// transaction that creates the order.
type Payment struct {
	ID      uint64  `json:"payment_id"`     // payments.payment_id
	OrderID uint64  `json:"order_id"`       // payments.order_id
	UserID  uint64  `json:"user_id"`        // payments.user_id
	Amount  float64 `json:"amount"`         // payments.amount
	Method  string  `json:"payment_method"` // payments.payment_method
	Status  string  `json:"payment_status"` // payments.payment_status
}
