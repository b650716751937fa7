package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/online-bookstore/internal/repository"
)

func testContactHandler(t *testing.T) (*ContactHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewContactHandler(repository.NewContactRepo(db)), mock
}

func TestContactCreate_Success(t *testing.T) {
	h, mock := testContactHandler(t)

	mock.ExpectExec("INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)").
		WithArgs("Alice", "alice@example.com", "Shipping", "Where is my order?").
		WillReturnResult(sqlmock.NewResult(9, 1))

	c, rec := newTestContext(t, http.MethodPost, "/api/contact",
		`{"name":"Alice","email":"alice@example.com","subject":"Shipping","message":"Where is my order?"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message submitted successfully")
	assert.Contains(t, rec.Body.String(), `"message_id":9`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactCreate_MissingFields(t *testing.T) {
	h, _ := testContactHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/contact",
		`{"name":"Alice","email":"","subject":"Hi","message":"  "}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "All fields are required")
}
