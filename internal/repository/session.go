package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/umalmyha/leads/internal/model"
	"github.com/umalmyha/leads/internal/storage/kv"
)

// DefaultSessionKey is versioned key admin session is stored under
const DefaultSessionKey = "ilandspaces_admin_session_v3"

type kvSessionRepository struct {
	store kv.Store
	key   string
}

// NewKvSessionRepository builds SessionRepository storing session as JSON under key
func NewKvSessionRepository(store kv.Store, key string) SessionRepository {
	return &kvSessionRepository{store: store, key: key}
}

func (r *kvSessionRepository) Find(ctx context.Context) (*model.Session, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *kvSessionRepository) Save(ctx context.Context, s *model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, raw, 0)
}

func (r *kvSessionRepository) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
