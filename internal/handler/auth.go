package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/config"
	"github.com/iliyamo/online-bookstore/internal/model"
	"github.com/iliyamo/online-bookstore/internal/repository"
	"github.com/iliyamo/online-bookstore/internal/utils"
)

// AuthHandler implements registration, login and the refresh-token
// endpoints. A successful register or login returns the public profile
// together with a token pair; session identity lives entirely in the
// signed token, never in client-held state.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
	Access  tokenPart        `json:"access"`
	Refresh tokenPart        `json:"refresh"`
}

// Register creates an account. The role is always standard; an admin
// can promote the account later through the user admin endpoint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}

	ctx := c.Request().Context()

	// Pre-check so duplicates get a clean conflict message. The UNIQUE
	// keys still catch the race between check and insert.
	taken, err := h.Users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or username already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash, model.RoleStandard)
	if err != nil {
		if errors.Is(err, repository.ErrEmailOrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	user := model.PublicUser{ID: uid, Username: req.Username, Email: req.Email, Role: model.RoleStandard, CreatedAt: time.Now().UTC()}
	access, refresh, err := h.issueTokens(c, uid, model.RoleStandard)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue tokens"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Message: "User registered successfully",
		User:    user,
		Access:  access,
		Refresh: refresh,
	})
}

// Login verifies credentials. A missing account and a wrong password
// answer identically so the endpoint cannot be used to probe for
// registered emails.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx := c.Request().Context()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	access, refresh, err := h.issueTokens(c, u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue tokens"})
	}

	return c.JSON(http.StatusOK, authResp{
		Message: "Login successful",
		User:    u.Public(),
		Access:  access,
		Refresh: refresh,
	})
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)
	hash := utils.HashRefreshToken(raw)

	ctx := c.Request().Context()

	uid, err := h.Tokens.Validate(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	if err := h.Tokens.Revoke(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	access, refresh, err := h.issueTokens(c, u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue tokens"})
	}

	return c.JSON(http.StatusOK, echo.Map{"access": access, "refresh": refresh})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshToken(strings.TrimSpace(req.RefreshToken))
	if err := h.Tokens.Revoke(c.Request().Context(), hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) issueTokens(c echo.Context, userID uint64, role int) (tokenPart, tokenPart, error) {
	access, err := utils.IssueAccessToken(h.Cfg.JWTSecret, userID, model.RoleName(role), h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	refresh, err := utils.MintRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	if err := h.Tokens.Store(c.Request().Context(), userID, utils.HashRefreshToken(refresh.Raw), refresh.Exp); err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	return tokenPart{Token: access.Token, Expires: access.Exp},
		tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, nil
}
