package repository

import (
	"context"
	"database/sql"
)

// PaymentRepo records settlements in the `payments` table. A payment
// row always references an existing order, which checkout guarantees by
// inserting both inside the same transaction.
type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment inside an open transaction and returns its
// generated identifier.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, orderID, userID uint64, amount float64, method, status string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (order_id, user_id, amount, payment_method, payment_status) VALUES (?, ?, ?, ?, ?)",
		orderID, userID, amount, method, status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
