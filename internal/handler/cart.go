package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/repository"
)

// CartHandler implements the cart endpoints. Every operation verifies
// that the addressed user matches the token subject (or the caller is
// an admin) before touching any rows.
type CartHandler struct {
	Carts *repository.CartRepo
}

func NewCartHandler(carts *repository.CartRepo) *CartHandler {
	return &CartHandler{Carts: carts}
}

type addCartReq struct {
	UserID   uint64 `json:"user_id"`
	BookID   uint64 `json:"book_id"`
	Quantity int64  `json:"quantity"`
}

// Add handles POST /api/cart. An existing (user, book) line absorbs the
// requested quantity (merge, not overwrite) and answers 200; a fresh
// line is inserted and answers 201. Quantity defaults to 1 when absent
// or non-positive.
func (h *CartHandler) Add(c echo.Context) error {
	var req addCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.BookID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and book_id are required"})
	}
	if !canActFor(c, req.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	ctx := c.Request().Context()

	cartID, existing, err := h.Carts.FindLine(ctx, req.UserID, req.BookID)
	switch {
	case err == nil:
		newQty := existing + qty
		if err := h.Carts.UpdateQuantity(ctx, cartID, newQty); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":  "Cart updated successfully",
			"cart_id":  cartID,
			"quantity": newQty,
		})
	case errors.Is(err, sql.ErrNoRows):
		id, err := h.Carts.Insert(ctx, req.UserID, req.BookID, qty)
		if errors.Is(err, repository.ErrDuplicateCartLine) {
			// Lost the race against a concurrent first add; the line
			// exists now, so merge into it like any repeated add.
			cartID, existing, ferr := h.Carts.FindLine(ctx, req.UserID, req.BookID)
			if ferr != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
			newQty := existing + qty
			if err := h.Carts.UpdateQuantity(ctx, cartID, newQty); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
			return c.JSON(http.StatusOK, echo.Map{
				"message":  "Cart updated successfully",
				"cart_id":  cartID,
				"quantity": newQty,
			})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message":  "Item added to cart",
			"cart_id":  id,
			"quantity": qty,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// List handles GET /api/cart/:userId, newest lines first, joined with
// each book's current title, price and image.
func (h *CartHandler) List(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if !canActFor(c, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	lines, err := h.Carts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, lines)
}

// Remove handles DELETE /api/cart/:userId/:bookId.
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	if !canActFor(c, userID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Carts.Remove(c.Request().Context(), userID, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found in cart"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from cart successfully"})
}
