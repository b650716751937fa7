package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/online-bookstore/internal/model"
)

// BookRepo provides CRUD operations over the `books` table. All five
// operations are independent single-statement actions; deleting a book
// never touches orders (order items keep their frozen price and id).
type BookRepo struct{ db *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{db: db} }

// DB exposes the underlying pool so callers can open transactions that
// span books and other tables (checkout re-reads prices inside its tx).
func (r *BookRepo) DB() *sql.DB { return r.db }

// List returns every book in the catalog.
func (r *BookRepo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT book_id, title, author, description, price, category, image_url FROM books")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.Category, &b.ImageURL); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetByID fetches one book. Returns ErrNotFound when the id has no row.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (model.Book, error) {
	var b model.Book
	err := r.db.QueryRowContext(ctx,
		"SELECT book_id, title, author, description, price, category, image_url FROM books WHERE book_id = ? LIMIT 1",
		id).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.Category, &b.ImageURL)
	if err == sql.ErrNoRows {
		return model.Book{}, ErrNotFound
	}
	return b, err
}

// Create inserts a book and returns its generated identifier.
func (r *BookRepo) Create(ctx context.Context, b model.Book) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO books (title, author, description, price, category, image_url) VALUES (?, ?, ?, ?, ?, ?)",
		b.Title, b.Author, b.Description, b.Price, b.Category, b.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces every mutable column. Returns ErrNotFound when the id
// matched no row.
func (r *BookRepo) Update(ctx context.Context, b model.Book) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, description = ?, price = ?, category = ?, image_url = ? WHERE book_id = ?",
		b.Title, b.Author, b.Description, b.Price, b.Category, b.ImageURL, b.ID)
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

// Delete removes a book. Returns ErrNotFound when the id matched no row.
func (r *BookRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM books WHERE book_id = ?", id)
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

// PriceTx reads a book's current price inside an open transaction.
// Checkout uses it to freeze authoritative prices instead of trusting
// caller-supplied ones. Returns ErrNotFound for an unknown book.
func (r *BookRepo) PriceTx(ctx context.Context, tx *sql.Tx, bookID uint64) (float64, error) {
	var price float64
	err := tx.QueryRowContext(ctx, "SELECT price FROM books WHERE book_id = ?", bookID).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return price, err
}
