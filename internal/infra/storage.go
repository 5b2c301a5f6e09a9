package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/leads/internal/cache"
	"github.com/umalmyha/leads/internal/config"
	"github.com/umalmyha/leads/internal/repository"
	"github.com/umalmyha/leads/internal/storage/kv"
	"github.com/umalmyha/leads/pkg/db/transactor"
)

// Storage bundles repositories backed by configured drivers.
// Sessions and challenges always live in key-value store, requirements follow StorageCfg.Driver.
type Storage struct {
	Transactor   transactor.Transactor
	Requirements repository.RequirementRepository
	Sessions     repository.SessionRepository
	Challenges   repository.ChallengeRepository
	closers      []func() error
}

// Close releases every opened connection
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func BuildStorage(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*Storage, error) {
	s := &Storage{}

	store, err := KvStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, store.Close)

	s.Sessions = repository.NewKvSessionRepository(store, cfg.StorageCfg.SessionKey)
	s.Challenges = repository.NewKvChallengeRepository(store)

	if err := s.requirements(ctx, cfg, store); err != nil {
		_ = s.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"store": cfg.StorageCfg.Driver,
		"kv":    cfg.StorageCfg.KvDriver,
	}).Info("storage is ready")
	return s, nil
}

func (s *Storage) requirements(ctx context.Context, cfg config.Config, store kv.Store) error {
	connCtx, cancel := context.WithTimeout(ctx, cfg.StorageCfg.ConnectTimeout)
	defer cancel()

	switch cfg.StorageCfg.Driver {
	case config.StoreDriverPostgres:
		pool, err := Postgresql(connCtx, cfg.PostgresCfg)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func() error {
			pool.Close()
			return nil
		})

		s.Transactor = transactor.NewPgxTransactor(pool)
		rps := repository.NewPostgresRequirementRepository(transactor.NewPgxWithinTransactionExecutor(pool))
		s.Requirements = cache.NewCachedRequirementRepository(rps, cache.NewKvRequirementCache(store, cache.DefaultTimeToLive))
	case config.StoreDriverMongo:
		client, err := Mongodb(connCtx, cfg.MongoCfg)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func() error {
			return client.Disconnect(context.Background())
		})

		s.Transactor = transactor.NewNopTransactor()
		rps := repository.NewMongoRequirementRepository(client, cfg.MongoCfg.Database)
		s.Requirements = cache.NewCachedRequirementRepository(rps, cache.NewKvRequirementCache(store, cache.DefaultTimeToLive))
	case config.StoreDriverKv:
		s.Transactor = transactor.NewNopTransactor()
		s.Requirements = repository.NewKvRequirementRepository(store, cfg.StorageCfg.RequirementsKey)
	default:
		return fmt.Errorf("unknown store driver %s", cfg.StorageCfg.Driver)
	}
	return nil
}

// KvStore opens key-value store selected by StorageCfg.KvDriver
func KvStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	connCtx, cancel := context.WithTimeout(ctx, cfg.StorageCfg.ConnectTimeout)
	defer cancel()

	switch cfg.StorageCfg.KvDriver {
	case config.KvDriverMemory:
		return kv.NewMemoryStore(), nil
	case config.KvDriverSqlite:
		return kv.NewSqliteStore(connCtx, cfg.SqliteCfg.Path)
	case config.KvDriverRedis:
		client, err := Redis(connCtx, cfg.RedisCfg)
		if err != nil {
			return nil, err
		}
		return kv.NewRedisStore(client, cfg.RedisCfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown key-value driver %s", cfg.StorageCfg.KvDriver)
	}
}
