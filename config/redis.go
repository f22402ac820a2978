package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultRedisAddr      = "localhost:6379"
	defaultExportQueue    = "timeline_export_queue"
	defaultExportStateTTL = 24 * time.Hour
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	QueueName string
	StateTTL  time.Duration
}

func GetRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:      getEnvDefault("REDIS_URL", defaultRedisAddr),
		Password:  os.Getenv("REDIS_PASSWORD"),
		QueueName: getEnvDefault("EXPORT_QUEUE_NAME", defaultExportQueue),
		StateTTL:  defaultExportStateTTL,
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		dbVal, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
		}
		cfg.DB = dbVal
	}

	if ttl := os.Getenv("EXPORT_STATE_TTL"); ttl != "" {
		ttlVal, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse EXPORT_STATE_TTL: %w", err)
		}
		cfg.StateTTL = ttlVal
	}

	return cfg, nil
}
