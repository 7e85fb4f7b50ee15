package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/cache"
	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/repository"
	"github.com/bhujal/registry/internal/validation"
	appErr "github.com/bhujal/registry/pkg/errors"
	"github.com/bhujal/registry/pkg/logger"
)

const MsgBorewellNotFound = "Borewell not found"

// MapRefresher schedules an asynchronous rebuild of the public map listing.
type MapRefresher interface {
	RequestMapRefresh(ctx context.Context) error
}

type BorewellService interface {
	Register(ctx context.Context, owner *models.Customer, in validation.BorewellInput) (*models.Borewell, error)
	ListMine(ctx context.Context, customerID uuid.UUID) ([]models.Borewell, error)
	ListMap(ctx context.Context) ([]models.MapEntry, error)
	Get(ctx context.Context, id string) (*models.Borewell, error)
	Update(ctx context.Context, requesterID, id string, in validation.BorewellInput) (*models.Borewell, error)
	Delete(ctx context.Context, requesterID, id string) error
}

type borewellService struct {
	borewells repository.BorewellRepository
	mapCache  cache.MapCache
	refresher MapRefresher
}

var _ BorewellService = (*borewellService)(nil)

// NewBorewellService wires the service. mapCache and refresher may be nil.
func NewBorewellService(borewells repository.BorewellRepository, mapCache cache.MapCache, refresher MapRefresher) BorewellService {
	if mapCache == nil {
		mapCache = cache.NoopMapCache{}
	}
	return &borewellService{borewells: borewells, mapCache: mapCache, refresher: refresher}
}

func (s *borewellService) Register(ctx context.Context, owner *models.Customer, in validation.BorewellInput) (*models.Borewell, error) {
	attrs, err := validation.ValidateBorewell(in)
	if err != nil {
		return nil, invalid(err)
	}

	b := &models.Borewell{CustomerID: owner.ID}
	attrs.ApplyTo(b)
	if err := s.borewells.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Customer = owner

	logger.L().Info("borewell registered",
		zap.String("borewell_id", b.ID.String()),
		zap.String("customer_id", owner.ID.String()),
	)
	s.mapChanged(ctx)
	return b, nil
}

func (s *borewellService) ListMine(ctx context.Context, customerID uuid.UUID) ([]models.Borewell, error) {
	items, err := s.borewells.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Borewell{}
	}
	return items, nil
}

// ListMap serves the public listing from cache, falling back to the
// database and repopulating the cache on a miss.
func (s *borewellService) ListMap(ctx context.Context) ([]models.MapEntry, error) {
	entries, ok, err := s.mapCache.Get(ctx)
	if err != nil {
		logger.L().Warn("map cache read failed", zap.Error(err))
	}
	if ok {
		return entries, nil
	}

	items, err := s.borewells.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	entries = models.NewMapEntries(items)
	if err := s.mapCache.Set(ctx, entries); err != nil {
		logger.L().Warn("map cache write failed", zap.Error(err))
	}
	return entries, nil
}

func (s *borewellService) Get(ctx context.Context, id string) (*models.Borewell, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, appErr.New(appErr.CodeNotFound, MsgBorewellNotFound)
	}
	var b models.Borewell
	if err := s.borewells.GetWithOwner(ctx, uid, &b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Update applies a partial payload. Existence is checked first, then
// ownership, then the merged record is validated.
func (s *borewellService) Update(ctx context.Context, requesterID, id string, in validation.BorewellInput) (*models.Borewell, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMutation(requesterID, b, ActionUpdate); err != nil {
		logger.L().Warn("borewell update denied",
			zap.String("borewell_id", b.ID.String()),
			zap.String("requester_id", requesterID),
		)
		return nil, err
	}

	attrs, err := validation.ValidateBorewell(in.Over(validation.AttributesOf(*b)))
	if err != nil {
		return nil, invalid(err)
	}
	attrs.ApplyTo(b)
	if err := s.borewells.Update(ctx, b); err != nil {
		return nil, err
	}

	logger.L().Info("borewell updated", zap.String("borewell_id", b.ID.String()))
	s.mapChanged(ctx)
	return b, nil
}

func (s *borewellService) Delete(ctx context.Context, requesterID, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return appErr.New(appErr.CodeNotFound, MsgBorewellNotFound)
	}
	var b models.Borewell
	if err := s.borewells.GetByID(ctx, uid, &b); err != nil {
		return notFound(err)
	}
	if err := AuthorizeMutation(requesterID, &b, ActionDelete); err != nil {
		logger.L().Warn("borewell delete denied",
			zap.String("borewell_id", b.ID.String()),
			zap.String("requester_id", requesterID),
		)
		return err
	}
	if err := s.borewells.Delete(ctx, uid); err != nil {
		return notFound(err)
	}

	logger.L().Info("borewell deleted", zap.String("borewell_id", uid.String()))
	s.mapChanged(ctx)
	return nil
}

// mapChanged drops the cached listing and asks the worker to rebuild it.
// Failures are logged; the mutation has already been committed.
func (s *borewellService) mapChanged(ctx context.Context) {
	if err := s.mapCache.Invalidate(ctx); err != nil {
		logger.L().Warn("map cache invalidate failed", zap.Error(err))
	}
	if s.refresher == nil {
		return
	}
	if err := s.refresher.RequestMapRefresh(ctx); err != nil {
		logger.L().Warn("map refresh request failed", zap.Error(err))
	}
}

func notFound(err error) error {
	if appErr.IsCode(err, appErr.CodeNotFound) {
		return appErr.New(appErr.CodeNotFound, MsgBorewellNotFound)
	}
	return err
}
