package config

import (
	"fmt"
	"os"
)

type PostgresConfig struct {
	DSN string
}

func GetPostgresConfig() (*PostgresConfig, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &PostgresConfig{
		DSN: dsn,
	}, nil
}
