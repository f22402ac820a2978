package middleware

import (
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"fmt"
	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"net/http"
	"strings"
	"time"
)

const (
	ContextUserIDKey = "userID"
	ContextScopesKey = "scopes"
)

const healthPath = "/health"

type CustomClaims struct {
	jwt.RegisteredClaims
	Scopes string `json:"scope,omitempty"`
}

type AuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
}

type authHandler struct {
	keyFunc jwt.Keyfunc
}

func NewAuthHandler(authConfig *config.AuthConfig, logger outbound.LoggerPort) (AuthHandler, error) {
	options := keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			logger.Error(err, "There was an error with the jwt.Keyfunc")
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	}

	jwks, err := keyfunc.Get(authConfig.JWKSURL, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from %s: %w", authConfig.JWKSURL, err)
	}

	return NewAuthHandlerWithKeyfunc(jwks.Keyfunc), nil
}

// NewAuthHandlerWithKeyfunc verifies tokens with an arbitrary key source.
func NewAuthHandlerWithKeyfunc(keyFunc jwt.Keyfunc) AuthHandler {
	return &authHandler{keyFunc: keyFunc}
}

func (h *authHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthPath {
			c.Next()
			return
		}
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		var claims CustomClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, h.keyFunc)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextScopesKey, strings.Split(claims.Scopes, " "))

		c.Next()
	}
}
