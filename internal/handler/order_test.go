package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCreate_KeepsCallerPrices(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders (user_id, total_amount, order_status) VALUES (?, ?, ?)").
		WithArgs(7, 30.00, "Pending").
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO order_items (order_id, book_id, quantity, price) VALUES (?, ?, ?, ?)").
		WithArgs(100, 3, 2, 15.00).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodPost, "/api/orders",
		`{"user_id":7,"total_amount":30.00,"items":[{"book_id":3,"quantity":2,"price":15.00}]}`)
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order created successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreate_MissingFields(t *testing.T) {
	h, _ := testOrderHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/orders",
		`{"user_id":7,"total_amount":0,"items":[]}`)
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderList(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectQuery("SELECT o.order_id, o.user_id, o.total_amount, o.order_status, o.created_at, u.username FROM orders o JOIN users u ON o.user_id = u.user_id ORDER BY o.order_id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "user_id", "total_amount", "order_status", "created_at", "username"}).
			AddRow(100, 7, 25.00, "Pending", time.Now(), "alice"))

	c, rec := newTestContext(t, http.MethodGet, "/api/orders", "")
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestOrderGet_OwnerSeesItems(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectQuery("SELECT order_id, user_id, total_amount, order_status, created_at FROM orders WHERE order_id = ? LIMIT 1").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "user_id", "total_amount", "order_status", "created_at"}).
			AddRow(100, 7, 25.00, "Pending", time.Now()))
	mock.ExpectQuery("SELECT oi.order_item_id, oi.order_id, oi.book_id, oi.quantity, oi.price, b.title FROM order_items oi JOIN books b ON oi.book_id = b.book_id WHERE oi.order_id = ?").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id", "order_id", "book_id", "quantity", "price", "title"}).
			AddRow(1, 100, 3, 2, 10.00, "Dune"))

	c, rec := newTestContext(t, http.MethodGet, "/api/orders/100", "")
	c.SetParamNames("id")
	c.SetParamValues("100")
	authenticate(c, 7, "USER")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")
}

func TestOrderGet_ForbiddenForStranger(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectQuery("SELECT order_id, user_id, total_amount, order_status, created_at FROM orders WHERE order_id = ? LIMIT 1").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "user_id", "total_amount", "order_status", "created_at"}).
			AddRow(100, 7, 25.00, "Pending", time.Now()))

	c, rec := newTestContext(t, http.MethodGet, "/api/orders/100", "")
	c.SetParamNames("id")
	c.SetParamValues("100")
	authenticate(c, 2, "USER")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderUpdateStatus_RequiresStatus(t *testing.T) {
	h, _ := testOrderHandler(t)

	c, rec := newTestContext(t, http.MethodPut, "/api/orders/100", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("100")
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order status is required")
}

func TestOrderUpdateStatus_Success(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectExec("UPDATE orders SET order_status = ? WHERE order_id = ?").
		WithArgs("Shipped", 100).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(t, http.MethodPut, "/api/orders/100",
		`{"order_status":"Shipped"}`)
	c.SetParamNames("id")
	c.SetParamValues("100")
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order updated successfully")
}

func TestOrderDelete_Success(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_items WHERE order_id = ?").
		WithArgs(100).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM orders WHERE order_id = ?").
		WithArgs(100).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newTestContext(t, http.MethodDelete, "/api/orders/100", "")
	c.SetParamNames("id")
	c.SetParamValues("100")
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order deleted successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderDelete_UnknownOrderRollsBack(t *testing.T) {
	h, mock := testOrderHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_items WHERE order_id = ?").
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM orders WHERE order_id = ?").
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := newTestContext(t, http.MethodDelete, "/api/orders/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")
	authenticate(c, 1, "ADMIN")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
