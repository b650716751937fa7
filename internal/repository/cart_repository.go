package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/online-bookstore/internal/model"
)

// CartRepo manages pending-purchase lines in the `cart` table. Lines
// are keyed by (user, book): adding the same book again merges into the
// existing line rather than inserting a duplicate.
type CartRepo struct{ db *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// FindLine returns the line id and quantity for a (user, book) pair.
// sql.ErrNoRows is passed through when no line exists so the caller can
// decide between insert and merge.
func (r *CartRepo) FindLine(ctx context.Context, userID, bookID uint64) (uint64, int64, error) {
	var (
		cartID   uint64
		quantity int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1",
		userID, bookID).Scan(&cartID, &quantity)
	return cartID, quantity, err
}

// Insert creates a new line and returns its id. The UNIQUE key on
// (user_id, book_id) turns a concurrent first add into MySQL error
// 1062, mapped to ErrDuplicateCartLine so the caller can merge instead.
func (r *CartRepo) Insert(ctx context.Context, userID, bookID uint64, quantity int64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)",
		userID, bookID, quantity)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrDuplicateCartLine
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateQuantity replaces the quantity of an existing line.
func (r *CartRepo) UpdateQuantity(ctx context.Context, cartID uint64, quantity int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE cart SET quantity = ? WHERE cart_id = ?", quantity, cartID)
	return err
}

// ListByUser returns the user's lines joined with the current book
// record, most recently added first. The joined price is the book's
// live price by design; only order items freeze prices.
func (r *CartRepo) ListByUser(ctx context.Context, userID uint64) ([]model.CartLineDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT c.cart_id, c.user_id, c.book_id, c.quantity, c.added_at, b.title, b.price, b.image_url FROM cart c JOIN books b ON c.book_id = b.book_id WHERE c.user_id = ? ORDER BY c.added_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]model.CartLineDetail, 0)
	for rows.Next() {
		var l model.CartLineDetail
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.Quantity, &l.AddedAt, &l.Title, &l.Price, &l.ImageURL); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Remove deletes the line for a (user, book) pair. Returns ErrNotFound
// when nothing was deleted.
func (r *CartRepo) Remove(ctx context.Context, userID, bookID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM cart WHERE user_id = ? AND book_id = ?", userID, bookID)
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

// ClearByUserTx deletes every line owned by the user inside an open
// transaction. Checkout calls this as its final step; zero deleted rows
// is not an error (the cart may already be empty).
func (r *CartRepo) ClearByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart WHERE user_id = ?", userID)
	return err
}
