package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const redisPingTimeout = 2 * time.Second

// Resources are the external handles the server depends on. DB and Redis are
// nil when their backends are not in use.
type Resources struct {
	Store storage.Store
	DB    *sql.DB
	Redis *redis.Client
}

// OpenResources connects the configured cart substrate. Redis is optional for
// every driver except redis itself; without it checkout is not rate limited.
func OpenResources(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Resources, error) {
	res := &Resources{}

	client, err := openRedis(ctx, cfg.Redis)
	switch {
	case err == nil:
		res.Redis = client
	case cfg.Storage.Driver == config.StorageRedis:
		return nil, err
	default:
		logger.Warn("Redis unavailable, checkout rate limiting disabled", zap.Error(err))
	}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		res.Store = storage.NewMemoryStore(storage.WithQuota(cfg.Storage.QuotaBytes))
	case config.StorageFile:
		store, err := storage.NewFileStore(afero.NewOsFs(), cfg.Storage.Path)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.Store = store
	case config.StorageRedis:
		res.Store = storage.NewRedisStore(res.Redis)
	case config.StoragePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.DB = db
		if err := database.RunMigrations(db, logger); err != nil {
			res.Close()
			return nil, err
		}
		res.Store = storage.NewPostgresStore(db)
	case config.StorageNone:
		res.Store = storage.Unavailable{}
	default:
		res.Close()
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	logger.Info("Cart storage ready", zap.String("driver", cfg.Storage.Driver))
	return res, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Close releases the database and redis connections
func (r *Resources) Close() error {
	var errs []error
	if r.DB != nil {
		if err := r.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
