package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/domain"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/token"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer is satisfied by *token.Manager.
type TokenIssuer interface {
	Issue(u domain.SessionUser, kind token.Kind) (string, time.Time, error)
	Parse(raw string, kind token.Kind) (domain.Session, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
}

type service struct {
	users  user.Repository
	tokens TokenIssuer
	logger *zap.Logger
}

func NewService(users user.Repository, tokens TokenIssuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, AuthResponse{}, err
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		l.Warn("login rejected", zap.String("user_id", u.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountInactive
	}

	pair, err := s.issuePair(u.SessionUser())
	if err != nil {
		l.Error("failed to issue tokens", zap.String("user_id", u.ID.String()), zap.Error(err))
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	l.Info("user logged in", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return pair, mapToResponse(u), nil
}

// Refresh reloads the user so role changes and deactivation take effect on
// the next rotation.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	session, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.FindByID(ctx, session.User.ID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountInactive
	}

	pair, err := s.issuePair(u.SessionUser())
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return pair, mapToResponse(u), nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, usererrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return mapToResponse(u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return autherrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdateFields(ctx, u.ID, map[string]any{"password": string(hashed)}); err != nil {
		l.Error("failed to update password", zap.String("user_id", u.ID.String()), zap.Error(err))
		return err
	}

	l.Info("password changed", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) issuePair(su domain.SessionUser) (TokenPair, error) {
	access, accessExp, err := s.tokens.Issue(su, token.KindAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := s.tokens.Issue(su, token.KindRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func mapToResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
	}
}
