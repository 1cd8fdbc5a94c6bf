package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
)

// PagesHandler is the catch-all behind the edge gate. Page rendering is out
// of scope; this returns the routing facts a client shell needs for any path
// the gate allowed through.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Render handles GET /* for all page-equivalent paths.
func (h *PagesHandler) Render(c *fiber.Ctx) error {
	resp := fiber.Map{
		"path":          c.Path(),
		"authenticated": false,
	}

	if ident, ok := access.IdentityFromContext(c); ok {
		resp["authenticated"] = true
		resp["email"] = ident.Email
		if profile, _ := access.ProfileFromContext(c); profile != nil {
			resp["role"] = string(profile.Role)
			resp["onboarded"] = profile.Onboarded
		}
	}
	return c.JSON(resp)
}
