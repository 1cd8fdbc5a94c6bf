package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// ProfileHandler serves the caller's own profile and onboarding transitions.
type ProfileHandler struct {
	onboarding *service.OnboardingService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(onboarding *service.OnboardingService) *ProfileHandler {
	return &ProfileHandler{onboarding: onboarding}
}

// Me handles GET /me: the profile snapshot plus its derived state.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	profile, _ := access.ProfileFromContext(c)

	var company *domain.Company
	if profile != nil && profile.Role == domain.RoleEmployer {
		var err error
		company, err = h.onboarding.CompanyOf(c.UserContext(), ident.AccountID)
		if err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile, company)})
}

// SelectRole handles POST /onboarding/role, the explicit re-selection flow.
func (h *ProfileHandler) SelectRole(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.SelectRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.onboarding.SelectRole(c.UserContext(), service.AccountRef{AccountID: ident.AccountID, Email: ident.Email}, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile, nil)})
}

// SubmitOnboarding handles PUT /onboarding. Idempotent; also backs profile
// editing.
func (h *ProfileHandler) SubmitOnboarding(c *fiber.Ctx) error {
	ident, ok := access.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.onboarding.SubmitOnboarding(c.UserContext(),
		service.AccountRef{AccountID: ident.AccountID, Email: ident.Email},
		service.OnboardingFields{
			FullName:        req.FullName,
			Title:           req.Title,
			Phone:           req.Phone,
			Telegram:        req.Telegram,
			Location:        req.Location,
			JobSearchStatus: domain.JobSearchStatus(req.JobSearchStatus),
		})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile, nil)})
}
