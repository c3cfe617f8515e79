package department

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	departmenterrors "go-ems/internal/department/errors"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/ref"
	"go-ems/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]DepartmentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (DepartmentResponse, error)
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentList struct {
	Items []DepartmentResponse `json:"items"`
	Total int64                `json:"total"`
}

type service struct {
	db       *gorm.DB
	repo     Repository
	users    user.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, store cache.Store, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	if store == nil {
		store = cache.Nop()
	}
	return &service{db: db, repo: repo, users: users, cache: store, cacheTTL: cacheTTL, logger: l}
}

func listCacheKey(f ListFilter) string {
	return fmt.Sprintf("departments:list:%s:%d:%d:%s:%s",
		strings.ToLower(f.Search), f.Page, f.Limit, f.SortBy, f.SortOrder)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]DepartmentResponse, int64, error) {
	res, err := cache.Remember(ctx, s.cache, listCacheKey(filter), s.cacheTTL,
		[]string{cache.TagDepartments},
		func(ctx context.Context) (departmentList, error) {
			rows, total, err := s.repo.List(ctx, filter)
			if err != nil {
				return departmentList{}, err
			}
			items := make([]DepartmentResponse, len(rows))
			for i, row := range rows {
				items[i] = mapToResponse(row.Department, row.EmployeeCount)
			}
			return departmentList{Items: items, Total: total}, nil
		})
	if err != nil {
		return nil, 0, err
	}
	return res.Items, res.Total, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (DepartmentResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(row.Department, row.EmployeeCount), nil
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	exists, err := s.repo.ExistsByName(ctx, name, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
	}

	budget := decimal.Zero
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return DepartmentResponse{}, departmenterrors.ErrInvalidBudget
		}
		budget = *req.Budget
	}

	dept := &Department{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Budget:      budget,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if managerRef := ref.Pick(req.ManagerID, req.Manager); managerRef != nil {
			manager, err := s.resolveManager(ctx, s.users.WithTx(tx), managerRef)
			if err != nil {
				return err
			}
			dept.ManagerID = &manager.ID
			dept.Manager = manager
		}

		return s.repo.WithTx(tx).Create(ctx, dept)
	})
	if err != nil {
		l.Warn("failed to create department", zap.String("name", name), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagDepartments, cache.TagDashboard)
	l.Info("department created", zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept, 0), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var updated *DepartmentWithCount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		dept := row.Department

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if !strings.EqualFold(name, dept.Name) {
				exists, err := repo.ExistsByName(ctx, name, &id)
				if err != nil {
					return err
				}
				if exists {
					return departmenterrors.ErrDepartmentNameExists
				}
			}
			dept.Name = name
		}
		if req.Description != nil {
			dept.Description = strings.TrimSpace(*req.Description)
		}
		if req.Budget != nil {
			if req.Budget.IsNegative() {
				return departmenterrors.ErrInvalidBudget
			}
			dept.Budget = *req.Budget
		}

		switch managerRef := ref.Pick(req.ManagerID, req.Manager); {
		case req.ClearManager:
			dept.ManagerID = nil
			dept.Manager = nil
		case managerRef != nil:
			manager, err := s.resolveManager(ctx, s.users.WithTx(tx), managerRef)
			if err != nil {
				return err
			}
			dept.ManagerID = &manager.ID
			dept.Manager = manager
		}

		if err := repo.Update(ctx, &dept); err != nil {
			return err
		}
		updated = &DepartmentWithCount{Department: dept, EmployeeCount: row.EmployeeCount}
		return nil
	})
	if err != nil {
		l.Warn("failed to update department", zap.String("department_id", id.String()), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagDepartments, cache.TagEmployees, cache.TagDashboard)
	return mapToResponse(updated.Department, updated.EmployeeCount), nil
}

// Delete is a soft delete and is refused while active employees remain.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	l := contextutil.GetLogger(ctx, s.logger)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.CountActiveEmployees(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return departmenterrors.ErrDepartmentHasEmployees.WithMessage(
				"Department still has %d active employee(s)", count)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagDepartments, cache.TagDashboard)
	l.Info("department deleted", zap.String("department_id", id.String()))
	return nil
}

func (s *service) resolveManager(ctx context.Context, users user.Repository, r *ref.Ref) (*user.User, error) {
	var (
		u   *user.User
		err error
	)
	switch r.Kind {
	case ref.KindID:
		id, perr := r.UUID()
		if perr != nil {
			return nil, departmenterrors.ErrManagerNotFound.WithMessage("Manager '%s' not found", r.Label())
		}
		u, err = users.FindByID(ctx, id)
	default:
		u, err = users.FindByName(ctx, r.Value)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, departmenterrors.ErrManagerNotFound.WithMessage("Manager '%s' not found", r.Label())
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, departmenterrors.ErrManagerNotFound.WithMessage("Manager '%s' is inactive", r.Label())
	}
	return u, nil
}
