package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"parkingbot/internal/handler/httperr"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errTokenMismatch = errs.New("bearer token mismatch")

// AuthMiddleware guards the JSON API with the same shared secret Slack
// sends in outgoing webhooks.
type AuthMiddleware struct {
	token string
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		token: cfg.Slack.WebhookToken,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenMismatch, "Access token required", nil)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			slog.Warn("API token rejected", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenMismatch, "Invalid token", nil)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
