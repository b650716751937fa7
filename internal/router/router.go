// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/online-bookstore/internal/config"
	"github.com/iliyamo/online-bookstore/internal/handler"
	"github.com/iliyamo/online-bookstore/internal/middleware"
)

// Register wires every route. Catalog reads, registration, login and
// contact intake are public; everything touching a specific user's data
// requires a valid access token, and catalog writes plus order/user
// administration additionally require the ADMIN role. Ownership checks
// (token subject vs addressed user) live in the handlers because they
// depend on path and body fields.
func Register(
	e *echo.Echo,
	cfg config.Config,
	rl config.RateLimitConfig,
	rdb *redis.Client,
	authH *handler.AuthHandler,
	bookH *handler.BookHandler,
	userH *handler.UserHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	contactH *handler.ContactHandler,
) {
	e.GET("/healthz", handler.Health)

	jwt := middleware.JWTAuth(cfg.JWTSecret)
	admin := middleware.RequireRole("ADMIN")
	limited := middleware.RateLimit(rl, rdb)

	// Credential endpoints carry the brute-force limiter.
	e.POST("/api/register", authH.Register, limited)
	e.POST("/api/login", authH.Login, limited)
	e.POST("/api/auth/refresh", authH.Refresh)
	e.POST("/api/auth/logout", authH.Logout)

	// Catalog: open reads, admin-only writes.
	e.GET("/api/books", bookH.List)
	e.GET("/api/books/:id", bookH.Get)
	books := e.Group("/api/books", jwt, admin)
	books.POST("", bookH.Create)
	books.PUT("/:id", bookH.Update)
	books.DELETE("/:id", bookH.Delete)

	cart := e.Group("/api/cart", jwt)
	cart.POST("", cartH.Add)
	cart.GET("/:userId", cartH.List)
	cart.DELETE("/:userId/:bookId", cartH.Remove)

	e.POST("/api/checkout", orderH.Checkout, jwt)

	orders := e.Group("/api/orders", jwt)
	orders.GET("", orderH.List, admin)
	orders.POST("", orderH.Create, admin)
	orders.GET("/:id", orderH.Get)
	orders.PUT("/:id", orderH.UpdateStatus, admin)
	orders.DELETE("/:id", orderH.Delete, admin)

	users := e.Group("/api/users", jwt)
	users.GET("", userH.List, admin)
	users.GET("/:id", userH.Get)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", userH.Delete)

	e.POST("/api/contact", contactH.Create)
}
