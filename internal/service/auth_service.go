package service

import (
	"context"
	"errors"
	"strings"

	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/repository"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"
)

type AuthService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*model.SessionResponse, error)
	SignIn(ctx context.Context, req model.SignInRequest) (*model.SessionResponse, error)
	// SignOut revokes the token until it would have expired.
	SignOut(ctx context.Context, token string) error
	Me(ctx context.Context, actor model.Actor) (*model.User, error)
	// SetRole lets a user pick participant, organizer or vendor for themselves.
	SetRole(ctx context.Context, actor model.Actor, role model.UserRole) (*model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	tokens    *auth.TokenManager
	blacklist cache.TokenBlacklist
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, blacklist cache.TokenBlacklist) AuthService {
	return &AuthServiceImpl{users: users, tokens: tokens, blacklist: blacklist}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) SignUp(ctx context.Context, req model.SignUpRequest) (*model.SessionResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &model.User{
		Name:                        strings.TrimSpace(req.Name),
		Email:                       normalizeEmail(req.Email),
		Role:                        model.RoleParticipant,
		PasswordHash:                hash,
		OrganizerVerificationStatus: "unverified",
	})
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AuthServiceImpl) SignIn(ctx context.Context, req model.SignInRequest) (*model.SessionResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AuthServiceImpl) session(user *model.User) (*model.SessionResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &model.SessionResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresIn(s.tokens.Now()))
}

func (s *AuthServiceImpl) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	return s.users.FindByID(ctx, actor.UserID)
}

func (s *AuthServiceImpl) SetRole(ctx context.Context, actor model.Actor, role model.UserRole) (*model.User, error) {
	if !role.IsSelectable() {
		return nil, apperrors.NewValidationError("role", "must be participant, organizer or vendor")
	}
	if actor.IsAdmin() {
		return nil, apperrors.NewValidationError("role", "admins cannot change their own role")
	}
	return s.users.UpdateRole(ctx, actor.UserID, role)
}
