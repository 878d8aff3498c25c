package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/config"
	"github.com/roomdesk/palace-occupancy/internal/middleware"
	"github.com/roomdesk/palace-occupancy/internal/utils"
)

// AuthHandler issues access tokens for the statically provisioned portal
// accounts. Credential management proper lives outside this service; the
// handler only verifies a bcrypt hash and mints a namespace-bound JWT.
type AuthHandler struct {
	Secret       string
	AccessTTLMin int
	Users        []config.PortalUser
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(secret string, ttlMin int, users []config.PortalUser) *AuthHandler {
	return &AuthHandler{Secret: secret, AccessTTLMin: ttlMin, Users: users}
}

// Login handles POST /v1/auth/login. On success it returns an access
// token whose claims bind the session to the account's role and tenant
// namespace.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	for _, u := range h.Users {
		if u.Username != body.Username {
			continue
		}
		if !utils.VerifyPassword(u.PasswordHash, body.Password) {
			break
		}
		tok, err := utils.NewAccessToken(h.Secret, u.Username, u.Role, u.Namespace, h.AccessTTLMin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"access_token": tok.Token,
			"expires_at":   tok.Exp,
			"role":         u.Role,
			"namespace":    u.Namespace,
		})
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
}

// Me handles GET /v1/me and echoes the identity claims of the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"username":  c.Get(middleware.CtxUserID),
		"role":      c.Get(middleware.CtxRole),
		"namespace": c.Get(middleware.CtxNamespace),
	})
}
