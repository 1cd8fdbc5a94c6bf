package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// OnboardingFields are the role-specific required fields collected by the
// multi-step form. Only the display name is mandatory.
type OnboardingFields struct {
	FullName        string
	Title           string
	Phone           string
	Telegram        string
	Location        string
	JobSearchStatus domain.JobSearchStatus
}

// CompanyFields describe the employer's company application.
type CompanyFields struct {
	Name        string
	Website     string
	Description string
}

// OnboardingService owns the account lifecycle transitions between role
// selection and full usability.
type OnboardingService struct {
	profiles   repository.ProfileRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewOnboardingService builds the service.
func NewOnboardingService(profiles repository.ProfileRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher) *OnboardingService {
	return &OnboardingService{profiles: profiles, companies: companies, dispatcher: dispatcher}
}

// SelectRole is the explicit re-selection flow: the only way a role changes
// after registration. Picking a role resets onboarded, since the role-specific
// required fields differ.
func (s *OnboardingService) SelectRole(ctx context.Context, ident AccountRef, role domain.Role) (*domain.Profile, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be candidate or employer", nil)
	}

	profile, err := s.loadProfile(ctx, ident)
	if err != nil {
		return nil, err
	}
	if profile.Role == role {
		return profile, nil
	}

	profile.Role = role
	profile.Onboarded = false
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return profile, nil
}

// SubmitOnboarding saves the required fields and marks the profile onboarded.
// Idempotent: re-submission while already onboarded overwrites fields without
// changing state, which is how profile editing reuses this transition.
func (s *OnboardingService) SubmitOnboarding(ctx context.Context, ident AccountRef, fields OnboardingFields) (*domain.Profile, error) {
	if strings.TrimSpace(fields.FullName) == "" {
		return nil, apperrors.NewValidationError("display name required", map[string]any{"field": "full_name"})
	}

	profile, err := s.loadProfile(ctx, ident)
	if err != nil {
		return nil, err
	}
	if profile.Role == domain.RoleUnset {
		return nil, apperrors.NewValidationError("select a role before onboarding", nil)
	}

	firstTime := !profile.Onboarded
	profile.FullName = strings.TrimSpace(fields.FullName)
	profile.Title = fields.Title
	profile.Phone = fields.Phone
	profile.Telegram = fields.Telegram
	profile.Location = fields.Location
	if fields.JobSearchStatus != "" {
		profile.JobSearchStatus = fields.JobSearchStatus
	}
	profile.Onboarded = true

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if firstTime {
		s.publish(ctx, events.EventProfileOnboarded, profile.AccountID, events.ProfileOnboardedPayload{
			Role:     profile.Role,
			FullName: profile.FullName,
		})
	}
	return profile, nil
}

// CreateCompany starts the employer verification chain. Requires an onboarded
// employer; at most one company per owner, so a second call is rejected
// without touching the existing row.
func (s *OnboardingService) CreateCompany(ctx context.Context, ident AccountRef, fields CompanyFields) (*domain.Company, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, apperrors.NewValidationError("company name required", map[string]any{"field": "name"})
	}

	profile, err := s.loadProfile(ctx, ident)
	if err != nil {
		return nil, err
	}
	if profile.Role != domain.RoleEmployer {
		return nil, apperrors.NewNotOnboarded("only employers can create a company")
	}
	if !profile.Onboarded {
		return nil, apperrors.NewNotOnboarded("complete onboarding before creating a company")
	}

	company := &domain.Company{
		OwnerID:     ident.AccountID,
		Name:        strings.TrimSpace(fields.Name),
		Website:     fields.Website,
		Description: fields.Description,
		Status:      domain.VerificationPending,
	}
	created, err := s.companies.CreateForOwner(ctx, company)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if !created {
		return nil, apperrors.NewCompanyExists()
	}

	s.publish(ctx, events.EventCompanySubmitted, ident.AccountID, events.CompanySubmittedPayload{
		CompanyID:   company.ID,
		CompanyName: company.Name,
	})
	return company, nil
}

// CompanyOf fetches the caller's company, nil when none exists.
func (s *OnboardingService) CompanyOf(ctx context.Context, accountID string) (*domain.Company, error) {
	company, err := s.companies.GetByOwner(ctx, accountID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return company, nil
}

// AccountRef carries the identity fields services need from the gate.
type AccountRef struct {
	AccountID string
	Email     string
}

func (s *OnboardingService) loadProfile(ctx context.Context, ident AccountRef) (*domain.Profile, error) {
	profile, err := s.profiles.Get(ctx, ident.AccountID)
	if err == pgx.ErrNoRows {
		// Lazily create the row so accounts predating the profiles table
		// can still onboard.
		return &domain.Profile{AccountID: ident.AccountID, Email: ident.Email}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return profile, nil
}

func (s *OnboardingService) publish(ctx context.Context, eventType events.EventType, accountID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
