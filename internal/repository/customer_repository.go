package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bhujal/registry/internal/models"
	appErr "github.com/bhujal/registry/pkg/errors"
)

type CustomerRepository interface {
	BaseRepository[models.Customer]
	GetByEmail(ctx context.Context, email string, dest *models.Customer) error
	// ExistsByEmailOrPhone reports whether another customer already holds
	// email or phone. excludeID, when non-nil, is ignored in the match.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string, excludeID any) (bool, error)
}

type customerRepository struct {
	BaseRepository[models.Customer]
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{BaseRepository: NewBaseRepository[models.Customer](db), db: db}
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string, dest *models.Customer) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "customer not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get customer by email failed")
	}
	return nil
}

func (r *customerRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string, excludeID any) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Customer{})
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone_number = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	case phone != "":
		q = q.Where("phone_number = ?", phone)
	default:
		return false, nil
	}
	if excludeID != nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check customer uniqueness failed")
	}
	return n > 0, nil
}
