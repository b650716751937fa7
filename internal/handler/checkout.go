package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/model"
	"github.com/iliyamo/online-bookstore/internal/queue"
	"github.com/iliyamo/online-bookstore/internal/repository"
)

type checkoutItemReq struct {
	BookID   uint64 `json:"book_id"`
	Quantity int64  `json:"quantity"`
}

type checkoutReq struct {
	UserID        uint64            `json:"user_id"`
	Items         []checkoutItemReq `json:"items"`
	PaymentMethod string            `json:"payment_method"`
}

// Checkout handles POST /api/checkout: order, line items, payment and
// cart clear in one transaction. Prices are re-read from the books
// table inside that transaction and the total is computed server-side,
// so a tampering client cannot buy below the catalog price. The
// payment row is a trust-the-caller settlement recorded as "Completed";
// there is no gateway behind it.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || len(req.Items) == 0 || req.PaymentMethod == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	if !canActFor(c, req.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	for _, it := range req.Items {
		if it.BookID == 0 || it.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid items"})
		}
	}

	ctx := c.Request().Context()
	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Freeze each line at the book's current price. These snapshots are
	// what keeps historical totals stable when catalog prices change.
	items := make([]model.OrderItem, 0, len(req.Items))
	var total float64
	for _, it := range req.Items {
		price, err := h.Books.PriceTx(ctx, tx, it.BookID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book_id"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error (order)"})
		}
		items = append(items, model.OrderItem{BookID: it.BookID, Quantity: it.Quantity, Price: price})
		total += price * float64(it.Quantity)
	}

	orderID, err := h.Orders.CreateTx(ctx, tx, req.UserID, total, "Pending")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error (order)"})
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, orderID, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error (items)"})
	}
	paymentID, err := h.Payments.CreateTx(ctx, tx, orderID, req.UserID, total, req.PaymentMethod, "Completed")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error (payment)"})
	}
	// Unconditional: the whole cart empties, not just the lines that
	// were checked out.
	if err := h.Carts.ClearByUserTx(ctx, tx, req.UserID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error (clear cart)"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	// Best effort: the order is already committed, a broker failure
	// only costs the notification.
	if h.Publish != nil {
		_ = h.Publish(ctx, queue.OrderPlacedEvent{
			OrderID:       orderID,
			PaymentID:     paymentID,
			UserID:        req.UserID,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			ItemCount:     len(items),
			PlacedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Order, payment created and cart cleared successfully",
		"order_id":     orderID,
		"payment_id":   paymentID,
		"total_amount": total,
	})
}
