package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/online-bookstore/internal/repository"
)

func testCartHandler(t *testing.T) (*CartHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewCartHandler(repository.NewCartRepo(db)), mock
}

func TestCartAdd_MergesExistingLine(t *testing.T) {
	h, mock := testCartHandler(t)

	// 2 already in the cart, 3 more requested: the line becomes 5.
	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}).AddRow(11, 2))
	mock.ExpectExec("UPDATE cart SET quantity = ? WHERE cart_id = ?").
		WithArgs(5, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":3}`)
	authenticate(c, 7, "USER")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart updated successfully")
	assert.Contains(t, rec.Body.String(), `"quantity":5`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_InsertsNewLine(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}))
	mock.ExpectExec("INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)").
		WithArgs(7, 3, 2).
		WillReturnResult(sqlmock.NewResult(12, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":2}`)
	authenticate(c, 7, "USER")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item added to cart")
	assert.Contains(t, rec.Body.String(), `"cart_id":12`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_DefaultsQuantityToOne(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}))
	mock.ExpectExec("INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)").
		WithArgs(7, 3, 1).
		WillReturnResult(sqlmock.NewResult(13, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":-4}`)
	authenticate(c, 7, "USER")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":1`)
}

func TestCartAdd_LostInsertRaceMerges(t *testing.T) {
	h, mock := testCartHandler(t)

	// A concurrent add lands between the lookup and the insert: the
	// UNIQUE key rejects the insert and the line gets merged instead.
	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}))
	mock.ExpectExec("INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)").
		WithArgs(7, 3, 2).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7-3' for key 'uq_cart_user_book'"))
	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}).AddRow(11, 1))
	mock.ExpectExec("UPDATE cart SET quantity = ? WHERE cart_id = ?").
		WithArgs(3, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":2}`)
	authenticate(c, 7, "USER")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart updated successfully")
	assert.Contains(t, rec.Body.String(), `"quantity":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAdd_ForbiddenForOtherUser(t *testing.T) {
	h, _ := testCartHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":1}`)
	authenticate(c, 2, "USER")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCartAdd_AdminMayActForAnyUser(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectQuery("SELECT cart_id, quantity FROM cart WHERE user_id = ? AND book_id = ? LIMIT 1").
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "quantity"}))
	mock.ExpectExec("INSERT INTO cart (user_id, book_id, quantity) VALUES (?, ?, ?)").
		WithArgs(7, 3, 1).
		WillReturnResult(sqlmock.NewResult(14, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/cart",
		`{"user_id":7,"book_id":3,"quantity":1}`)
	authenticate(c, 2, "ADMIN")
	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCartList(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectQuery("SELECT c.cart_id, c.user_id, c.book_id, c.quantity, c.added_at, b.title, b.price, b.image_url FROM cart c JOIN books b ON c.book_id = b.book_id WHERE c.user_id = ? ORDER BY c.added_at DESC").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "user_id", "book_id", "quantity", "added_at", "title", "price", "image_url"}).
			AddRow(11, 7, 3, 2, time.Now(), "Dune", 12.50, ""))

	c, rec := newTestContext(t, http.MethodGet, "/api/cart/7", "")
	c.SetParamNames("userId")
	c.SetParamValues("7")
	authenticate(c, 7, "USER")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")
}

func TestCartRemove_NotFound(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectExec("DELETE FROM cart WHERE user_id = ? AND book_id = ?").
		WithArgs(7, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newTestContext(t, http.MethodDelete, "/api/cart/7/99", "")
	c.SetParamNames("userId", "bookId")
	c.SetParamValues("7", "99")
	authenticate(c, 7, "USER")
	require.NoError(t, h.Remove(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item not found in cart")
}

func TestCartRemove_Success(t *testing.T) {
	h, mock := testCartHandler(t)

	mock.ExpectExec("DELETE FROM cart WHERE user_id = ? AND book_id = ?").
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(t, http.MethodDelete, "/api/cart/7/3", "")
	c.SetParamNames("userId", "bookId")
	c.SetParamValues("7", "3")
	authenticate(c, 7, "USER")
	require.NoError(t, h.Remove(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item removed from cart successfully")
}
