package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/auth"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// RequestLogger tags each request with an id, records prometheus
// metrics, and logs the outcome.
func RequestLogger(appCtx *app.AppContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start).Seconds()

		reqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		reqDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
		if status >= 400 {
			errorCount.WithLabelValues(path, strconv.Itoa(status)).Inc()
		}

		appCtx.Logger.Info("http_request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", duration,
			"client_ip", c.ClientIP(),
		)
	}
}

// AuthRequired validates the Bearer token and stores the session
// identity in the gin context.
func AuthRequired(appCtx *app.AppContext) gin.HandlerFunc {
	secret := []byte(appCtx.Cfg.Auth.JWTSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by AuthRequired.
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// CurrentEmail reads the authenticated email set by AuthRequired.
func CurrentEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
