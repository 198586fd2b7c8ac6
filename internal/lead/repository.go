// File: internal/lead/repository.go
package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"lead_capture_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for lead data operations.
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	FindConflict(ctx context.Context, email, phone string) (*Lead, error)
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	List(ctx context.Context, page, pageSize int) ([]Lead, *common.Pagination, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM lead repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new lead record into the database.
func (r *gormRepository) Create(ctx context.Context, lead *Lead) error {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Phone = strings.TrimSpace(lead.Phone)
	err := r.db.WithContext(ctx).Create(lead).Error
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A lead with this email or phone already exists.")
		}
		return err
	}
	return nil
}

// FindConflict retrieves the first lead whose email OR phone matches the
// candidate submission. Returns common.ErrNotFound when no record collides.
func (r *gormRepository) FindConflict(ctx context.Context, email, phone string) (*Lead, error) {
	var leadModel Lead
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", normalizedEmail, strings.TrimSpace(phone)).
		First(&leadModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No conflicting lead found.")
		}
		return nil, err
	}
	return &leadModel, nil
}

// FindByPhone retrieves a lead by its phone number.
func (r *gormRepository) FindByPhone(ctx context.Context, phone string) (*Lead, error) {
	var leadModel Lead
	err := r.db.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)).First(&leadModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Lead not found with this phone.")
		}
		return nil, err
	}
	return &leadModel, nil
}

// List returns a page of leads, newest first.
func (r *gormRepository) List(ctx context.Context, page, pageSize int) ([]Lead, *common.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var totalItems int64
	if err := r.db.WithContext(ctx).Model(&Lead{}).Count(&totalItems).Error; err != nil {
		return nil, nil, err
	}

	var leads []Lead
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&leads).Error
	if err != nil {
		return nil, nil, err
	}

	return leads, common.NewPagination(totalItems, page, pageSize), nil
}

// CountCreatedSince returns the number of leads captured at or after the
// given time. Used by the digest job.
func (r *gormRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Lead{}).Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
