package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/model"
	"github.com/iliyamo/online-bookstore/internal/queue"
	"github.com/iliyamo/online-bookstore/internal/repository"
)

// OrderHandler implements order administration and the checkout
// sequence (checkout.go). Every multi-statement write path runs inside
// one database transaction with a deferred rollback, so a failure at
// any step leaves no partial order behind.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Payments *repository.PaymentRepo
	Carts    *repository.CartRepo
	Books    *repository.BookRepo

	// Publish sends the post-checkout event; nil disables publishing.
	Publish func(ctx context.Context, event queue.OrderPlacedEvent) error
}

func NewOrderHandler(orders *repository.OrderRepo, payments *repository.PaymentRepo, carts *repository.CartRepo, books *repository.BookRepo) *OrderHandler {
	return &OrderHandler{Orders: orders, Payments: payments, Carts: carts, Books: books}
}

type orderItemReq struct {
	BookID   uint64  `json:"book_id"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderReq struct {
	UserID      uint64         `json:"user_id"`
	TotalAmount float64        `json:"total_amount"`
	Status      string         `json:"order_status"`
	Items       []orderItemReq `json:"items"`
}

// Create handles POST /api/orders, the administrative entry point for
// out-of-band orders. Unlike checkout, the caller-supplied total and
// item prices are persisted as given.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.TotalAmount <= 0 || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	status := req.Status
	if status == "" {
		status = "Pending"
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

	orderID, err := h.Orders.CreateTx(ctx, tx, req.UserID, req.TotalAmount, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error when creating order"})
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{BookID: it.BookID, Quantity: it.Quantity, Price: it.Price})
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, orderID, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error when creating items"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Order created successfully",
		"order_id": orderID,
	})
}

// List handles GET /api/orders: every order joined with the owning
// username, newest first.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, orders)
}

type orderDetailResp struct {
	model.Order
	Items []model.OrderItemDetail `json:"items"`
}

// Get handles GET /api/orders/:id, returning the order with its items,
// each carrying the referenced book's title.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	ctx := c.Request().Context()

	order, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !canActFor(c, order.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	items, err := h.Orders.ListItems(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, orderDetailResp{Order: order, Items: items})
}

type updateOrderReq struct {
	Status string `json:"order_status"`
}

// UpdateStatus handles PUT /api/orders/:id, replacing the status only.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	var req updateOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order status is required"})
	}
	if err := h.Orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order updated successfully"})
}

// Delete handles DELETE /api/orders/:id. Items go first, then the
// order, in one transaction; zero deleted items is fine, but zero
// deleted orders means the id never existed and the whole delete rolls
// back with a 404.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
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

	if err := h.Orders.DeleteItemsTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed delete items"})
	}
	if err := h.Orders.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed delete order"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
