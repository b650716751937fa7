package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/model"
	"github.com/iliyamo/online-bookstore/internal/repository"
)

// UserHandler implements the account admin endpoints. Listing is
// admin-only; single-account reads, updates and deletes are allowed for
// the account owner or an admin. Only an admin can change a role.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: users}
}

type updateUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     *int   `json:"user_role"`
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if !canActFor(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Update handles PUT /api/users/:id. user_role defaults to 0 when
// unset; a non-admin caller keeps their current role no matter what the
// body says.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if !canActFor(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and email are required"})
	}

	ctx := c.Request().Context()

	role := model.RoleStandard
	if req.Role != nil {
		role = *req.Role
	}
	if !isAdmin(c) {
		// Role changes are an admin privilege; everyone else keeps
		// whatever the database says.
		current, err := h.Users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		role = current.Role
	}

	if err := h.Users.Update(ctx, id, req.Username, req.Email, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		case errors.Is(err, repository.ErrEmailOrUsernameTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or username already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully"})
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if !canActFor(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
