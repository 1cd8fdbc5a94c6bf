package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// AdminHandler serves the administrator screens. The edge gate has already
// verified allow-list membership before these run.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	profiles, err := h.admin.ListUsers(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	out := make([]dto.AdminUserResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, dto.NewAdminUserResponse(profile))
	}
	return c.JSON(fiber.Map{"data": out})
}

// BlockUser handles POST /admin/users/:id/block.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	return h.setBlocked(c, true)
}

// UnblockUser handles POST /admin/users/:id/unblock.
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	return h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *fiber.Ctx, blocked bool) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	accountID := c.Params("id")
	if accountID == "" {
		return fiber.NewError(http.StatusBadRequest, "account id required")
	}
	if err := h.admin.SetBlocked(c.UserContext(), ident.Email, accountID, blocked); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"account_id": accountID, "blocked": blocked}})
}

// ListCompanies handles GET /admin/companies.
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.admin.ListCompanies(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ReviewCompany handles POST /admin/companies/:id/review.
func (h *AdminHandler) ReviewCompany(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.admin.ReviewCompany(c.UserContext(), ident.Email, c.Params("id"), service.ReviewDecision(req.Decision))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// ReopenCompany handles POST /admin/companies/:id/reopen, the explicit
// re-application path for rejected companies.
func (h *AdminHandler) ReopenCompany(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.admin.ReopenApplication(c.UserContext(), ident.Email, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reopened": true}})
}

// AuditTrail handles GET /admin/audit.
func (h *AdminHandler) AuditTrail(c *fiber.Ctx) error {
	entries, err := h.admin.AuditTrail(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.NewAuditEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": out})
}
