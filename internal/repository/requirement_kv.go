package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/storage/kv"
)

// DefaultRequirementsKey is versioned key requirements list is stored under, bump it on record shape change
const DefaultRequirementsKey = "ilandspaces_customers_v3"

type kvRequirementRepository struct {
	mu    sync.Mutex
	store kv.Store
	key   string
}

// NewKvRequirementRepository builds RequirementRepository keeping all requirements as one JSON array under key
func NewKvRequirementRepository(store kv.Store, key string) RequirementRepository {
	return &kvRequirementRepository{store: store, key: key}
}

func (r *kvRequirementRepository) FindAll(ctx context.Context) ([]*model.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *kvRequirementRepository) FindByID(ctx context.Context, id string) (*model.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requirements, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, req := range requirements {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, nil
}

func (r *kvRequirementRepository) Create(ctx context.Context, req *model.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requirements, err := r.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range requirements {
		if existing.ID == req.ID {
			return ErrDuplicateRequirement
		}
	}

	// newest first, overlapping submissions may arrive in other order than they were stamped
	pos := 0
	for pos < len(requirements) && requirements[pos].CreatedAt.After(req.CreatedAt) {
		pos++
	}

	updated := make([]*model.Requirement, 0, len(requirements)+1)
	updated = append(updated, requirements[:pos]...)
	updated = append(updated, req)
	updated = append(updated, requirements[pos:]...)
	return r.save(ctx, updated)
}

func (r *kvRequirementRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requirements, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for _, req := range requirements {
		if req.ID == id {
			if req.Status != from {
				return false, nil
			}
			req.Status = to
			return true, r.save(ctx, requirements)
		}
	}
	return false, nil
}

func (r *kvRequirementRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requirements, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]*model.Requirement, 0, len(requirements))
	for _, req := range requirements {
		if req.ID != id {
			kept = append(kept, req)
		}
	}

	if len(kept) == len(requirements) {
		return false, nil
	}
	return true, r.save(ctx, kept)
}

// load reads requirements list, missing list is created empty and persisted
func (r *kvRequirementRepository) load(ctx context.Context) ([]*model.Requirement, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			empty := make([]*model.Requirement, 0)
			return empty, r.save(ctx, empty)
		}
		return nil, err
	}

	requirements := make([]*model.Requirement, 0)
	if err := json.Unmarshal(raw, &requirements); err != nil {
		return nil, fmt.Errorf("stored requirements under %s are malformed - %w", r.key, err)
	}
	return requirements, nil
}

func (r *kvRequirementRepository) save(ctx context.Context, requirements []*model.Requirement) error {
	raw, err := json.Marshal(requirements)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, raw, 0)
}
