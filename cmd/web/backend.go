package main

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/psique-web/internal/audit"
	"github.com/BruksfildServices01/psique-web/internal/config"
	dbpkg "github.com/BruksfildServices01/psique-web/internal/db"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

// backend agrupa o Store escolhido por STORAGE_DRIVER e o que precisa ser
// fechado no desligamento.
type backend struct {
	Store storage.Store

	db     *gorm.DB
	closer func() error
}

func openBackend(cfg *config.Config) (*backend, error) {
	b := &backend{closer: func() error { return nil }}

	switch cfg.StorageDriver {
	case "memory", "":
		b.Store = storage.NewMemoryStore()

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		b.Store = storage.NewRedisStore(client, cfg.StorageTTL)
		b.closer = client.Close

	case "postgres":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		b.db = db
		b.Store = storage.NewGormStore(db)
		b.closer = sqlDB.Close

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.StorageSecret != "" {
		b.Store = storage.Sealed(b.Store, cfg.StorageSecret)
	}
	return b, nil
}

// AuditSink grava no Postgres quando ele está configurado; senão, no log.
func (b *backend) AuditSink(logger *logging.Logger) audit.Sink {
	if b.db != nil {
		return audit.NewGormSink(b.db)
	}
	return audit.NewLogSink(logger)
}

func (b *backend) Close() error {
	return b.closer()
}
