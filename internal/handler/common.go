// Package handler implements the HTTP endpoints. Handlers bundle the
// repositories they need, validate input inline and answer with the
// echo.Map{"error": ...} envelope; store failures are genericized to
// "database error" so internals never leak to clients.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// userIDFrom extracts the authenticated user id placed in the context
// by the JWT middleware. JSON numbers decode as float64, so several
// representations are accepted.
func userIDFrom(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated role claim is ADMIN.
func isAdmin(c echo.Context) bool {
	role, ok := c.Get("role").(string)
	return ok && role == "ADMIN"
}

// canActFor reports whether the caller may operate on resources owned
// by target: admins always, everyone else only on their own.
func canActFor(c echo.Context, target uint64) bool {
	if isAdmin(c) {
		return true
	}
	id, err := userIDFrom(c)
	return err == nil && id == target
}

// pathID parses a numeric path parameter; zero is never a valid id.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
