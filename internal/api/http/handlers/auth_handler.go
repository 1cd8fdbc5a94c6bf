package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// AuthHandler exposes the registration/login/logout flows. Responses carry the
// role router's landing decision so the client knows where to navigate next.
type AuthHandler struct {
	accounts   *service.AccountService
	router     *access.Router
	cookieName string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, router *access.Router, cookieName string) *AuthHandler {
	return &AuthHandler{accounts: accounts, router: router, cookieName: cookieName}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	// The auth form pre-selects the role from the query string.
	if req.Role == "" {
		req.Role = c.Query("role")
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	result, err := h.accounts.Register(c.UserContext(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	landing := h.router.Landing(identity.Identity{AccountID: result.Account.ID, Email: result.Account.Email},
		result.Profile, result.Company, req.Next)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":    result.Account.ID,
				"email": result.Account.Email,
			},
			"auth":    dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
			"landing": dto.LandingResponse{Path: landing.Path, Restricted: landing.Restricted},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	result, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if apperrors.CodeOf(err) == "ACCOUNT_BLOCKED" {
			// Sessions are already revoked; drop the cookie and point the
			// client at the auth page with the blocked flag.
			c.ClearCookie(h.cookieName)
			return c.Redirect(access.BlockedRedirect(), fiber.StatusSeeOther)
		}
		return err
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	landing := h.router.Landing(identity.Identity{AccountID: result.Account.ID, Email: result.Account.Email},
		result.Profile, result.Company, req.Next)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":    result.Account.ID,
				"email": result.Account.Email,
			},
			"auth":    dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
			"landing": dto.LandingResponse{Path: landing.Path, Restricted: landing.Restricted},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if err := h.accounts.Logout(c.UserContext(), token); err != nil {
		return err
	}
	c.ClearCookie(h.cookieName)
	return c.JSON(fiber.Map{"data": fiber.Map{"signed_out": true}})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
