// Package cache keeps recently read requirements close to the service
// when records live in an external database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/storage/kv"
	"github.com/umalmyha/leads/pkg/db/transactor"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTimeToLive is how long cached requirement is kept
const DefaultTimeToLive = 10 * time.Minute

type RequirementCache interface {
	FindByID(context.Context, string) (*model.Requirement, error)
	EvictByID(context.Context, string) error
	Cache(context.Context, *model.Requirement) error
}

type kvRequirementCache struct {
	store kv.Store
	ttl   time.Duration
}

func NewKvRequirementCache(store kv.Store, ttl time.Duration) RequirementCache {
	if ttl <= 0 {
		ttl = DefaultTimeToLive
	}
	return &kvRequirementCache{store: store, ttl: ttl}
}

func (r *kvRequirementCache) FindByID(ctx context.Context, id string) (*model.Requirement, error) {
	res, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var req model.Requirement
	if err := msgpack.Unmarshal(res, &req); err != nil {
		return nil, err
	}
	req.CreatedAt = req.CreatedAt.UTC()
	return &req, nil
}

func (r *kvRequirementCache) EvictByID(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.key(id))
}

func (r *kvRequirementCache) Cache(ctx context.Context, req *model.Requirement) error {
	encoded, err := msgpack.Marshal(req)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(req.ID), encoded, r.ttl)
}

func (r *kvRequirementCache) key(id string) string {
	return fmt.Sprintf("requirement:%s", id)
}

type cachedRequirementRepository struct {
	repository.RequirementRepository
	cache RequirementCache
}

// NewCachedRequirementRepository serves lookups by id from cache, every change evicts cached entry
func NewCachedRequirementRepository(rps repository.RequirementRepository, cache RequirementCache) repository.RequirementRepository {
	return &cachedRequirementRepository{RequirementRepository: rps, cache: cache}
}

func (r *cachedRequirementRepository) FindByID(ctx context.Context, id string) (*model.Requirement, error) {
	req, err := r.cache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req != nil {
		return req, nil
	}

	req, err = r.RequirementRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req != nil {
		if err := r.cache.Cache(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// UpdateStatus evicts only once change is committed, so concurrent lookup can't cache previous status back
func (r *cachedRequirementRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status) (bool, error) {
	changed, err := r.RequirementRepository.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return false, err
	}
	return changed, transactor.AfterCommit(ctx, r.evict(id))
}

func (r *cachedRequirementRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := r.RequirementRepository.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	return deleted, transactor.AfterCommit(ctx, r.evict(id))
}

func (r *cachedRequirementRepository) evict(id string) func(context.Context) error {
	return func(ctx context.Context) error {
		return r.cache.EvictByID(ctx, id)
	}
}
