package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
	"github.com/iliyamo/movienight/internal/utils"
)

// dbTimeout bounds the store work of a single request.
const dbTimeout = 5 * time.Second

// Authenticator is the part of service.AuthService the HTTP layer uses.
type Authenticator interface {
	Signup(ctx context.Context, in service.SignupInput) (model.UserPublic, error)
	Login(ctx context.Context, username, password string) (utils.AccessToken, error)
	ListUsers(ctx context.Context) ([]model.UserPublic, error)
}

// AuthHandler serves signup, login, token validation and the user directory.
type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler { return &AuthHandler{Auth: a} }

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Signup: POST /api/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Auth.Signup(ctx, service.SignupInput{Username: req.Username, Email: req.Email, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, signupResp{ID: u.ID, Username: u.Username, Email: u.Email})
}

// Login: POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tok, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token})
}

// Validate: GET /api/validate, behind JWTAuth.
func (h *AuthHandler) Validate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	username, _ := c.Get(CtxUsername).(string)
	return c.JSON(http.StatusOK, echo.Map{"user": service.TokenUser{ID: uid, Username: username}})
}

// ListUsers: GET /api/users
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Auth.ListUsers(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}
