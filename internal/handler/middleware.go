package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	actorKey = "actor"
	tokenKey = "token"
)

// Authenticate resolves the bearer token, when present, into the request's actor.
// It never rejects; RequireAuth decides whether an anonymous caller may continue.
func Authenticate(resolver auth.SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), token)
		switch {
		case err != nil && !errors.Is(err, apperrors.ErrUnauthorized):
			logger.WithComponent("middleware").Warn("session resolve failed", zap.Error(err))
		case actor != nil:
			c.Set(actorKey, *actor)
			c.Set(tokenKey, token)
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless an actor was resolved. With roles given,
// the actor must hold one of them.
func RequireAuth(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if len(roles) > 0 && !hasRole(actor, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden",
			})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the actor set by Authenticate.
func CurrentActor(c *gin.Context) (model.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := v.(model.Actor)
	return actor, ok
}

// SetActor stores actor on the request; used by tests and trusted internal routes.
func SetActor(actor model.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, actor)
		c.Next()
	}
}

func hasRole(actor model.Actor, roles []model.UserRole) bool {
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
