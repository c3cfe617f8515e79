package user

import (
	"context"

	"go-ems/internal/domain"
	"go-ems/internal/shared/contextutil"
	usererrors "go-ems/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error)
	ChangeRole(ctx context.Context, actor domain.SessionUser, id uuid.UUID, role string) (UserResponse, error)
	SetStatus(ctx context.Context, actor domain.SessionUser, id uuid.UUID, isActive bool) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ChangeRole(ctx context.Context, actor domain.SessionUser, id uuid.UUID, raw string) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role, ok := domain.ParseRole(raw)
	if !ok {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if actor.Owns(id) {
		return UserResponse{}, usererrors.ErrSelfRoleChange
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if u.Role == role {
		return mapToResponse(*u), nil
	}

	previous := u.Role
	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to change user role", zap.String("target_user_id", id.String()), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user role changed",
		zap.String("target_user_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(role)),
	)
	return mapToResponse(*u), nil
}

func (s *service) SetStatus(ctx context.Context, actor domain.SessionUser, id uuid.UUID, isActive bool) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if actor.Owns(id) && !isActive {
		return UserResponse{}, usererrors.ErrSelfDeactivation
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.String("target_user_id", id.String()), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user status updated", zap.String("target_user_id", id.String()), zap.Bool("is_active", isActive))
	return mapToResponse(*u), nil
}
