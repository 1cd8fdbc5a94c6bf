package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// CompanyRequest is the employer's verification application.
type CompanyRequest struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// CompanyResponse view of a company row.
type CompanyResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"verification_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCompanyResponse maps the domain model.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:          company.ID,
		OwnerID:     company.OwnerID,
		Name:        company.Name,
		Website:     company.Website,
		Description: company.Description,
		Status:      string(company.Status),
		CreatedAt:   company.CreatedAt,
	}
}
