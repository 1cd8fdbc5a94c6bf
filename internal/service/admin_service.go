package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ReviewDecision is the administrator's verdict on a pending company.
type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

// AdminService implements administrator operations: user blocking, company
// review, and the audit trail. Authorization happens at the edge gate; this
// service trusts its caller is an admin and records who acted.
type AdminService struct {
	profiles   repository.ProfileRepository
	companies  repository.CompanyRepository
	audit      repository.AuditRepository
	sessions   identity.Sessions
	dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(profiles repository.ProfileRepository, companies repository.CompanyRepository, audit repository.AuditRepository, sessions identity.Sessions, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{
		profiles:   profiles,
		companies:  companies,
		audit:      audit,
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

// ListUsers returns recent profiles for the admin screen.
func (s *AdminService) ListUsers(ctx context.Context, limit int) ([]domain.Profile, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	profiles, err := s.profiles.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return profiles, nil
}

// SetBlocked flips the administrative block flag. Blocking supersedes all
// other state: every live session of the account is revoked so the next
// request hits the gate as anonymous.
func (s *AdminService) SetBlocked(ctx context.Context, actorEmail, accountID string, blocked bool) error {
	if err := s.profiles.SetBlocked(ctx, accountID, blocked); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("profile", map[string]any{"account_id": accountID})
		}
		return apperrors.NewStoreUnavailable(err)
	}

	if blocked {
		if err := s.sessions.RevokeAccount(ctx, accountID); err != nil {
			return apperrors.NewStoreUnavailable(err)
		}
	}

	action := domain.AuditAccountUnblocked
	if blocked {
		action = domain.AuditAccountBlocked
	}
	s.record(ctx, actorEmail, action, accountID, "")

	s.publish(ctx, events.EventAccountBlocked, accountID, events.AccountBlockedPayload{
		Blocked: blocked,
		Actor:   actorEmail,
	})
	return nil
}

// ListCompanies returns recent companies for the verification queue.
func (s *AdminService) ListCompanies(ctx context.Context, limit int) ([]domain.Company, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	companies, err := s.companies.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return companies, nil
}

// ReviewCompany resolves a pending application. Only the pending state is
// reviewable; anything else is an ordering conflict.
func (s *AdminService) ReviewCompany(ctx context.Context, actorEmail, companyID string, decision ReviewDecision) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("company", map[string]any{"company_id": companyID})
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if company.Status != domain.VerificationPending {
		return nil, apperrors.NewConflict("company is not pending review", map[string]any{"status": company.Status})
	}

	var status domain.VerificationStatus
	var action domain.AuditAction
	switch decision {
	case ReviewApprove:
		status = domain.VerificationApproved
		action = domain.AuditCompanyApproved
	case ReviewReject:
		status = domain.VerificationRejected
		action = domain.AuditCompanyRejected
	default:
		return nil, apperrors.NewValidationError("decision must be approve or reject", nil)
	}

	if err := s.companies.UpdateStatus(ctx, companyID, status); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	company.Status = status

	s.record(ctx, actorEmail, action, companyID, company.Name)
	s.publish(ctx, events.EventCompanyReviewed, company.OwnerID, events.CompanyReviewedPayload{
		CompanyID: companyID,
		Status:    status,
		Reviewer:  actorEmail,
	})
	return company, nil
}

// ReopenApplication deletes a rejected company so the employer can re-apply
// explicitly. Rejection is otherwise terminal for the row.
func (s *AdminService) ReopenApplication(ctx context.Context, actorEmail, companyID string) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("company", map[string]any{"company_id": companyID})
	}
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if company.Status != domain.VerificationRejected {
		return apperrors.NewConflict("only rejected applications can be reopened", map[string]any{"status": company.Status})
	}

	if err := s.companies.DeleteByOwner(ctx, company.OwnerID); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	s.record(ctx, actorEmail, domain.AuditCompanyRejected, companyID, "application reopened")
	return nil
}

// AuditTrail returns the most recent administrative actions.
func (s *AdminService) AuditTrail(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.audit.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return entries, nil
}

func (s *AdminService) record(ctx context.Context, actorEmail string, action domain.AuditAction, subjectID, detail string) {
	entry := &domain.AuditEntry{
		ActorEmail: actorEmail,
		Action:     action,
		SubjectID:  subjectID,
		Detail:     detail,
	}
	// Audit writes are best-effort; the primary mutation already happened.
	_ = s.audit.Append(ctx, entry)
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, accountID string, payload interface{}) {
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
