package app

import (
	"context"
	"database/sql"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/config"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/db"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/redis"

	_ "github.com/lib/pq"
)

// Infra holds the optional durable backends. A nil DB means interviews
// live in memory; a nil Redis means tokens live in memory. Configured but
// unreachable backends are a startup failure, not a silent fallback.
type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}

		if err := db.RunKeystoneMigration(ctx, sqlDB); err != nil {
			return nil, err
		}

		logger.Info("database ready")
		infra.DB = &db.DB{DB: sqlDB}
	} else {
		logger.Warn("no DATABASE_DSN configured, interviews will not survive restarts")
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready")
		infra.Redis = redisClient
	} else {
		logger.Warn("no REDIS_ADDR configured, issued tokens will not survive restarts")
	}

	return infra, nil
}
