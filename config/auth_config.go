package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	JWKSURL string
}

func NewAuthConfig() (*AuthConfig, error) {
	jwksURL := os.Getenv("JWKS_URL")
	if jwksURL == "" {
		return nil, fmt.Errorf("JWKS_URL environment variable not set")
	}

	return &AuthConfig{
		JWKSURL: jwksURL,
	}, nil
}
