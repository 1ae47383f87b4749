package auth

import (
	"context"
	"errors"
	"time"

	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/metrics"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"go.uber.org/zap"
)

type SessionResolver interface {
	// Resolve returns the actor behind a bearer token.
	// A nil actor with a nil error means the session could not be resolved in time
	// and the caller continues unauthenticated.
	Resolve(ctx context.Context, token string) (*model.Actor, error)
}

type SessionResolverImpl struct {
	tokens    *TokenManager
	blacklist cache.TokenBlacklist
	users     repository.UserRepository
	timeout   time.Duration
}

func NewSessionResolver(tokens *TokenManager, blacklist cache.TokenBlacklist, users repository.UserRepository, timeout time.Duration) SessionResolver {
	return &SessionResolverImpl{
		tokens:    tokens,
		blacklist: blacklist,
		users:     users,
		timeout:   timeout,
	}
}

func (r *SessionResolverImpl) Resolve(ctx context.Context, token string) (*model.Actor, error) {
	start := time.Now()
	defer func() { metrics.SessionResolveDuration.Observe(time.Since(start).Seconds()) }()

	claims, err := r.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log := logger.WithComponent("auth").With(zap.String("user_id", claims.UserID.String()))

	revoked, err := r.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.Warn("session blacklist unavailable, continuing anonymously", zap.Error(err))
		return nil, nil
	}
	if revoked {
		return nil, apperrors.ErrUnauthorized
	}

	// the role is read fresh so a role change applies without signing in again
	user, err := r.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrUnauthorized
	}
	if err != nil {
		log.Warn("session lookup failed, continuing anonymously", zap.Error(err))
		return nil, nil
	}

	return &model.Actor{UserID: user.ID, Role: user.Role}, nil
}
