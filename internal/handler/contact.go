package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/repository"
)

// ContactHandler stores free-form inquiry messages. Intake only; no
// notification is dispatched.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(contacts *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create handles POST /api/contact.
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
	}

	id, err := h.Contacts.Create(c.Request().Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Message submitted successfully",
		"message_id": id,
	})
}
