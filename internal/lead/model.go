// File: internal/lead/model.go
package lead

import (
	"time"

	"lead_capture_backend/internal/common"

	"github.com/google/uuid"
)

// Lead represents a captured contact in the database. Leads are append-only:
// this workflow never updates or deletes them. The unique indexes on email
// and phone are the backstop for concurrent submissions that pass the
// application-level duplicate check simultaneously.
type Lead struct {
	common.BaseModel        // Embeds ID, CreatedAt, UpdatedAt
	Email            string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name             string `gorm:"type:varchar(255);not null"`
	Phone            string `gorm:"type:varchar(32);not null;uniqueIndex"`
}

// TableName specifies the table name for the Lead model.
func (Lead) TableName() string {
	return "leads"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// SubmitFormRequest defines the structure of the contact form submission.
// Email, if sent by the client, is ignored: the authenticated session's
// email is authoritative.
type SubmitFormRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// ListLeadsQuery captures the pagination parameters of the admin listing.
type ListLeadsQuery struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// LeadResponse defines the structure for lead data sent in API responses.
type LeadResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ToLeadResponse converts a Lead model to a LeadResponse DTO.
func ToLeadResponse(l *Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		Email:     l.Email,
		Name:      l.Name,
		Phone:     l.Phone,
		CreatedAt: l.CreatedAt,
	}
}
