// Package mocks provides testify mocks for the repository interfaces.
//
// Lookups that fill a destination follow one convention: the first return
// value is the error and the second, when non-nil, is copied into dest.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/repository"
)

type CustomerRepository struct {
	mock.Mock
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (m *CustomerRepository) Create(ctx context.Context, obj *models.Customer) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *CustomerRepository) GetByID(ctx context.Context, id any, dest *models.Customer) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && len(args) > 1 && args.Get(1) != nil {
		*dest = *args.Get(1).(*models.Customer)
	}
	return args.Error(0)
}

func (m *CustomerRepository) Update(ctx context.Context, obj *models.Customer) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *CustomerRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CustomerRepository) GetByEmail(ctx context.Context, email string, dest *models.Customer) error {
	args := m.Called(ctx, email, dest)
	if args.Error(0) == nil && len(args) > 1 && args.Get(1) != nil {
		*dest = *args.Get(1).(*models.Customer)
	}
	return args.Error(0)
}

func (m *CustomerRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string, excludeID any) (bool, error) {
	args := m.Called(ctx, email, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

type BorewellRepository struct {
	mock.Mock
}

var _ repository.BorewellRepository = (*BorewellRepository)(nil)

func (m *BorewellRepository) Create(ctx context.Context, obj *models.Borewell) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *BorewellRepository) GetByID(ctx context.Context, id any, dest *models.Borewell) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && len(args) > 1 && args.Get(1) != nil {
		*dest = *args.Get(1).(*models.Borewell)
	}
	return args.Error(0)
}

func (m *BorewellRepository) Update(ctx context.Context, obj *models.Borewell) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *BorewellRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BorewellRepository) GetWithOwner(ctx context.Context, id any, dest *models.Borewell) error {
	args := m.Called(ctx, id, dest)
	if args.Error(0) == nil && len(args) > 1 && args.Get(1) != nil {
		*dest = *args.Get(1).(*models.Borewell)
	}
	return args.Error(0)
}

func (m *BorewellRepository) ListByCustomer(ctx context.Context, customerID any) ([]models.Borewell, error) {
	args := m.Called(ctx, customerID)
	if v := args.Get(0); v != nil {
		return v.([]models.Borewell), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BorewellRepository) ListWithOwners(ctx context.Context) ([]models.Borewell, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Borewell), args.Error(1)
	}
	return nil, args.Error(1)
}
