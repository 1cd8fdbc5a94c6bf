package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/identity"
)

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	seq      int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.seq++
	account.ID = fmt.Sprintf("acc-%d", f.seq)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if account, ok := f.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	upserts  int
	failWith error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Get(_ context.Context, accountID string) (*domain.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if profile, ok := f.profiles[accountID]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.upserts++
	profile.UpdatedAt = time.Now()
	stored := *profile
	f.profiles[profile.AccountID] = &stored
	return nil
}

func (f *fakeProfileRepo) SetBlocked(_ context.Context, accountID string, blocked bool) error {
	profile, ok := f.profiles[accountID]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Blocked = blocked
	return nil
}

func (f *fakeProfileRepo) List(_ context.Context, limit int) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		out = append(out, *profile)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	byOwner map[string]*domain.Company
	creates int
	seq     int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byOwner: make(map[string]*domain.Company)}
}

func (f *fakeCompanyRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Company, error) {
	if company, ok := f.byOwner[ownerID]; ok {
		copied := *company
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	for _, company := range f.byOwner {
		if company.ID == id {
			copied := *company
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCompanyRepo) CreateForOwner(_ context.Context, company *domain.Company) (bool, error) {
	f.creates++
	if _, exists := f.byOwner[company.OwnerID]; exists {
		return false, nil
	}
	f.seq++
	company.ID = fmt.Sprintf("comp-%d", f.seq)
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	stored := *company
	f.byOwner[company.OwnerID] = &stored
	return true, nil
}

func (f *fakeCompanyRepo) UpdateStatus(_ context.Context, id string, status domain.VerificationStatus) error {
	for _, company := range f.byOwner {
		if company.ID == id {
			company.Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCompanyRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	delete(f.byOwner, ownerID)
	return nil
}

func (f *fakeCompanyRepo) List(_ context.Context, limit int) ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(f.byOwner))
	for _, company := range f.byOwner {
		out = append(out, *company)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeSessions struct {
	issued   int
	revoked  []string
	signOuts []string
}

func (f *fakeSessions) Issue(_ context.Context, accountID, _ string) (string, time.Time, error) {
	f.issued++
	return fmt.Sprintf("token-%s-%d", accountID, f.issued), time.Now().Add(time.Hour), nil
}

func (f *fakeSessions) ValidateSession(_ context.Context, _ string) (identity.Identity, error) {
	return identity.Identity{}, identity.ErrInvalidSession
}

func (f *fakeSessions) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return nil
}

func (f *fakeSessions) RevokeAccount(_ context.Context, accountID string) error {
	f.revoked = append(f.revoked, accountID)
	return nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) typesPublished() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		out = append(out, event.Type)
	}
	return out
}
