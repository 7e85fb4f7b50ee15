package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/cache"
	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/repository"
	"github.com/bhujal/registry/pkg/logger"
)

// TypeMapRefresh rebuilds the cached public map listing.
const TypeMapRefresh = "borewell:map_refresh"

// refreshWindow collapses bursts of mutations into one rebuild.
const refreshWindow = 10 * time.Second

// NewMapRefreshTask builds the (payload-less) refresh task.
func NewMapRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeMapRefresh, nil,
		asynq.MaxRetry(3),
		asynq.Unique(refreshWindow),
		asynq.Timeout(30*time.Second),
	)
}

// Enqueuer is the subset of *asynq.Client used by Publisher.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher schedules map refreshes after borewell mutations.
type Publisher struct {
	client Enqueuer
}

func NewPublisher(client Enqueuer) *Publisher {
	return &Publisher{client: client}
}

// RequestMapRefresh enqueues a rebuild. A refresh already pending inside
// the uniqueness window is not an error.
func (p *Publisher) RequestMapRefresh(ctx context.Context) error {
	_, err := p.client.EnqueueContext(ctx, NewMapRefreshTask())
	if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		return fmt.Errorf("enqueue map refresh: %w", err)
	}
	return nil
}

// MapRefreshHandler recomputes the listing from the database and stores it.
type MapRefreshHandler struct {
	borewells repository.BorewellRepository
	cache     cache.MapCache
}

func NewMapRefreshHandler(borewells repository.BorewellRepository, c cache.MapCache) *MapRefreshHandler {
	return &MapRefreshHandler{borewells: borewells, cache: c}
}

func (h *MapRefreshHandler) HandleMapRefresh(ctx context.Context, t *asynq.Task) error {
	start := time.Now()
	items, err := h.borewells.ListWithOwners(ctx)
	if err != nil {
		logger.L().Error("map refresh: list borewells failed", zap.Error(err))
		return err
	}
	entries := models.NewMapEntries(items)
	if err := h.cache.Set(ctx, entries); err != nil {
		logger.L().Error("map refresh: cache write failed", zap.Error(err))
		return err
	}
	logger.L().Info("map listing refreshed",
		zap.Int("entries", len(entries)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
