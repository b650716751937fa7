package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/online-bookstore/internal/model"
)

func TestOrderItemsKeepPriceAfterCatalogUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	books := NewBookRepo(db)
	orders := NewOrderRepo(db)

	// The catalog price changes; the item query reads order_items.price
	// only (exact-match SQL, no reference to books.price), so the line
	// keeps the value frozen at checkout.
	mock.ExpectExec("UPDATE books SET title = ?, author = ?, description = ?, price = ?, category = ?, image_url = ? WHERE book_id = ?").
		WithArgs("Dune", "Frank Herbert", "", 99.99, "", "", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT oi.order_item_id, oi.order_id, oi.book_id, oi.quantity, oi.price, b.title FROM order_items oi JOIN books b ON oi.book_id = b.book_id WHERE oi.order_id = ?").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id", "order_id", "book_id", "quantity", "price", "title"}).
			AddRow(1, 100, 3, 2, 10.00, "Dune"))

	require.NoError(t, books.Update(context.Background(),
		model.Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Price: 99.99}))

	items, err := orders.ListItems(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10.00, items[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartInsert_DuplicateKeyMapsToSentinel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepo(db)

	mock.ExpectExec("INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)").
		WithArgs(7, 3, 1).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7-3' for key 'uq_cart_user_book'"))

	_, err := repo.Insert(context.Background(), 7, 3, 1)
	assert.ErrorIs(t, err, ErrDuplicateCartLine)
}
