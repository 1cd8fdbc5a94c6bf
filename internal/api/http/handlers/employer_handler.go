package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// EmployerHandler serves the employer verification chain.
type EmployerHandler struct {
	onboarding *service.OnboardingService
}

// NewEmployerHandler constructs handler.
func NewEmployerHandler(onboarding *service.OnboardingService) *EmployerHandler {
	return &EmployerHandler{onboarding: onboarding}
}

// CreateCompany handles POST /employer/company.
func (h *EmployerHandler) CreateCompany(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.onboarding.CreateCompany(c.UserContext(),
		service.AccountRef{AccountID: ident.AccountID, Email: ident.Email},
		service.CompanyFields{
			Name:        req.Name,
			Website:     req.Website,
			Description: req.Description,
		})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// GetCompany handles GET /employer/company.
func (h *EmployerHandler) GetCompany(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	company, err := h.onboarding.CompanyOf(c.UserContext(), ident.AccountID)
	if err != nil {
		return err
	}
	if company == nil {
		return apperrors.NewNotFound("company", nil)
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}
