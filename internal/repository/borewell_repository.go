package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bhujal/registry/internal/models"
	appErr "github.com/bhujal/registry/pkg/errors"
)

type BorewellRepository interface {
	BaseRepository[models.Borewell]
	// GetWithOwner loads one borewell with its customer populated.
	GetWithOwner(ctx context.Context, id any, dest *models.Borewell) error
	// ListByCustomer returns a customer's borewells, newest first.
	ListByCustomer(ctx context.Context, customerID any) ([]models.Borewell, error)
	// ListWithOwners returns every borewell with its owner, newest first.
	ListWithOwners(ctx context.Context) ([]models.Borewell, error)
}

type borewellRepository struct {
	BaseRepository[models.Borewell]
	db *gorm.DB
}

func NewBorewellRepository(db *gorm.DB) BorewellRepository {
	return &borewellRepository{BaseRepository: NewBaseRepository[models.Borewell](db), db: db}
}

func (r *borewellRepository) GetWithOwner(ctx context.Context, id any, dest *models.Borewell) error {
	if err := r.db.WithContext(ctx).Preload("Customer").First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "borewell not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get borewell failed")
	}
	return nil
}

func (r *borewellRepository) ListByCustomer(ctx context.Context, customerID any) ([]models.Borewell, error) {
	var items []models.Borewell
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list borewells by customer failed")
	}
	return items, nil
}

func (r *borewellRepository) ListWithOwners(ctx context.Context) ([]models.Borewell, error) {
	var items []models.Borewell
	if err := r.db.WithContext(ctx).Preload("Customer").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list borewells failed")
	}
	return items, nil
}
