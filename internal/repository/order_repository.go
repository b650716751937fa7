package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/online-bookstore/internal/model"
)

// OrderRepo provides persistence for orders and their line items. The
// multi-step write paths (checkout, direct creation, cascade delete)
// expose Tx variants so the whole sequence commits or rolls back as one
// unit; the caller owns the transaction.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying pool for callers that begin transactions.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts the order row inside an open transaction and returns
// its generated identifier.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64, totalAmount float64, status string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, total_amount, order_status) VALUES (?, ?, ?)",
		userID, totalAmount, status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateItemsBulkTx inserts one row per item in a single multi-row
// statement, all referencing the given order. An empty slice is a no-op.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, orderID uint64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := "INSERT INTO order_items (order_id, book_id, quantity, price) VALUES "
	args := make([]interface{}, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, orderID, it.BookID, it.Quantity, it.Price)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// List returns all orders joined with the owning username, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]model.OrderSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT o.order_id, o.user_id, o.total_amount, o.order_status, o.created_at, u.username FROM orders o JOIN users u ON o.user_id = u.user_id ORDER BY o.order_id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.OrderSummary, 0)
	for rows.Next() {
		var o model.OrderSummary
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.Username); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetByID fetches one order. Returns ErrNotFound when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT order_id, user_id, total_amount, order_status, created_at FROM orders WHERE order_id = ? LIMIT 1",
		id).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Order{}, ErrNotFound
	}
	return o, err
}

// ListItems returns an order's items joined with each book's title.
func (r *OrderRepo) ListItems(ctx context.Context, orderID uint64) ([]model.OrderItemDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT oi.order_item_id, oi.order_id, oi.book_id, oi.quantity, oi.price, b.title FROM order_items oi JOIN books b ON oi.book_id = b.book_id WHERE oi.order_id = ?",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItemDetail, 0)
	for rows.Next() {
		var it model.OrderItemDetail
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BookID, &it.Quantity, &it.Price, &it.Title); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus replaces the status string only. Returns ErrNotFound
// when the id matched no row.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET order_status = ? WHERE order_id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItemsTx removes an order's items inside an open transaction.
// Zero affected rows is fine here; only the order row decides 404.
func (r *OrderRepo) DeleteItemsTx(ctx context.Context, tx *sql.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = ?", orderID)
	return err
}

// DeleteTx removes the order row inside an open transaction. Returns
// ErrNotFound when the id matched no row so the caller can roll back.
func (r *OrderRepo) DeleteTx(ctx context.Context, tx *sql.Tx, orderID uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE order_id = ?", orderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
