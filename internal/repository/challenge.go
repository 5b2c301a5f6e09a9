package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/storage/kv"
	"github.com/vmihailenco/msgpack/v5"
)

type kvChallengeRepository struct {
	store kv.Store
	now   func() time.Time
}

// NewKvChallengeRepository builds ChallengeRepository, challenges live until their ExpiresAt
func NewKvChallengeRepository(store kv.Store) ChallengeRepository {
	return &kvChallengeRepository{store: store, now: time.Now}
}

func (r *kvChallengeRepository) Save(ctx context.Context, c *model.Challenge) error {
	ttl := c.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("challenge %s is already expired", c.ID)
	}

	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(c.ID), encoded, ttl)
}

func (r *kvChallengeRepository) Take(ctx context.Context, id string) (*model.Challenge, error) {
	raw, err := r.store.Take(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var c model.Challenge
	if err := msgpack.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *kvChallengeRepository) key(id string) string {
	return fmt.Sprintf("challenge:%s", id)
}
