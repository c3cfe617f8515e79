package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-ems/internal/department"
	"go-ems/internal/domain"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/notification"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/counter"
	"go-ems/internal/shared/ref"
	"go-ems/internal/shared/storage"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	employeeCodeCounter = "employee_code"
	statsCacheKey       = "employees:stats"
	recentHireWindow    = 30 * 24 * time.Hour
	avatarFolder        = "avatars"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, actor domain.SessionUser, id uuid.UUID) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, actor domain.SessionUser, id uuid.UUID, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Hierarchy(ctx context.Context) ([]*HierarchyNode, error)
	Stats(ctx context.Context) (EmployeeStats, error)
	UploadAvatar(ctx context.Context, actor domain.SessionUser, id uuid.UUID, filename string, r io.Reader) (EmployeeResponse, error)
}

// Deps groups the collaborators of the employee service. Cache, Images and
// Notifier are optional.
type Deps struct {
	DB          *gorm.DB
	Repo        Repository
	Users       user.Repository
	Departments department.Repository
	Counter     counter.Repository
	Cache       cache.Store
	CacheTTL    time.Duration
	Images      storage.ImageStore
	Notifier    notification.Dispatcher
	BcryptCost  int
}

type service struct {
	db          *gorm.DB
	repo        Repository
	users       user.Repository
	departments department.Repository
	counter     counter.Repository
	cache       cache.Store
	cacheTTL    time.Duration
	images      storage.ImageStore
	notifier    notification.Dispatcher
	bcryptCost  int
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop()
	}
	if deps.Notifier == nil {
		deps.Notifier = notification.NopDispatcher()
	}
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}
	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		users:       deps.Users,
		departments: deps.Departments,
		counter:     deps.Counter,
		cache:       deps.Cache,
		cacheTTL:    deps.CacheTTL,
		images:      deps.Images,
		notifier:    deps.Notifier,
		bcryptCost:  deps.BcryptCost,
		now:         time.Now,
		logger:      l,
	}
}

// List scopes EMPLOYEE callers to their own record; only privileged callers
// may include inactive employees.
func (s *service) List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]EmployeeResponse, int64, error) {
	if !actor.Role.IsPrivileged() {
		filter.UserID = &actor.ID
		filter.IncludeInactive = false
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.SessionUser, id uuid.UUID) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !actor.CanActOn(e.UserID) {
		return EmployeeResponse{}, employeeerrors.ErrNotOwner
	}
	return mapToResponse(*e), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.EmployeeID)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists.WithMessage(
			"Employee with email '%s' already exists", email)
	}
	if code != "" {
		exists, err := s.repo.ExistsByCode(ctx, code)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if exists {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeCodeAlreadyExists.WithMessage(
				"Employee ID '%s' already exists", code)
		}
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok {
			return EmployeeResponse{}, usererrors.ErrInvalidRole
		}
		role = r
	}

	status := StatusActive
	if req.Status != "" {
		st, ok := ParseStatus(req.Status)
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
		}
		status = st
	}

	hireDate := s.now()
	if req.HireDate != "" {
		hireDate, err = time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
	}

	salary := decimal.Zero
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return EmployeeResponse{}, employeeerrors.ErrNegativeSalary
		}
		salary = *req.Salary
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	u := &user.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
		IsActive: true,
	}
	e := &Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		UserID:       u.ID,
		Position:     strings.TrimSpace(req.Position),
		Salary:       salary,
		HireDate:     hireDate,
		Status:       status,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if deptRef := ref.Pick(req.DepartmentID, req.Department); deptRef != nil {
			dept, err := s.resolveDepartment(ctx, s.departments.WithTx(tx), deptRef)
			if err != nil {
				return err
			}
			e.DepartmentID = &dept.ID
			e.Department = dept
		}
		if managerRef := ref.Pick(req.ManagerID, req.Manager); managerRef != nil {
			manager, err := s.resolveManager(ctx, repo, managerRef)
			if err != nil {
				return err
			}
			e.ManagerID = &manager.ID
			e.Manager = manager
		}

		if e.EmployeeCode == "" {
			next, err := s.counter.WithTx(tx).GetNextValue(ctx, employeeCodeCounter)
			if err != nil {
				return err
			}
			e.EmployeeCode = fmt.Sprintf("EMP-%06d", next)
		}

		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			return err
		}
		return repo.Create(ctx, e)
	})
	if err != nil {
		l.Warn("create employee failed", zap.String("email", email), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	e.User = u

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagEmployees, cache.TagDepartments, cache.TagDashboard)
	s.notifyOnboarded(ctx, e)

	l.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_code", e.EmployeeCode),
	)
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actor domain.SessionUser, id uuid.UUID, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !actor.Role.IsPrivileged() && req.restricted() {
		return EmployeeResponse{}, employeeerrors.ErrRestrictedFields
	}

	var (
		updated        *Employee
		departmentMove bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		users := s.users.WithTx(tx)

		e, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanActOn(e.UserID) {
			return employeeerrors.ErrNotOwner
		}
		u := e.User
		if u == nil {
			if u, err = users.FindByID(ctx, e.UserID); err != nil {
				return err
			}
		}

		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email != u.Email {
				other, err := users.FindByEmail(ctx, email)
				switch {
				case err == nil && other.ID != u.ID:
					return employeeerrors.ErrEmailAlreadyExists.WithMessage(
						"Employee with email '%s' already exists", email)
				case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
					return err
				}
			}
			u.Email = email
		}
		if req.Phone != nil {
			u.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			u.Address = strings.TrimSpace(*req.Address)
		}
		if req.Avatar != nil {
			u.AvatarURL = strings.TrimSpace(*req.Avatar)
		}

		if req.Position != nil {
			e.Position = strings.TrimSpace(*req.Position)
		}
		if req.Salary != nil {
			if req.Salary.IsNegative() {
				return employeeerrors.ErrNegativeSalary
			}
			e.Salary = *req.Salary
		}
		if req.HireDate != nil {
			hd, err := time.Parse(dateLayout, *req.HireDate)
			if err != nil {
				return employeeerrors.ErrInvalidHireDate
			}
			e.HireDate = hd
		}
		if req.Status != nil {
			st, ok := ParseStatus(*req.Status)
			if !ok {
				return employeeerrors.ErrInvalidStatus
			}
			e.Status = st
		}

		previousDept := e.DepartmentID
		switch deptRef := ref.Pick(req.DepartmentID, req.Department); {
		case req.ClearDepartment:
			e.DepartmentID = nil
			e.Department = nil
		case deptRef != nil:
			dept, err := s.resolveDepartment(ctx, s.departments.WithTx(tx), deptRef)
			if err != nil {
				return err
			}
			e.DepartmentID = &dept.ID
			e.Department = dept
		}
		departmentMove = !sameID(previousDept, e.DepartmentID)

		switch managerRef := ref.Pick(req.ManagerID, req.Manager); {
		case req.ClearManager:
			e.ManagerID = nil
			e.Manager = nil
		case managerRef != nil:
			manager, err := s.resolveManager(ctx, repo, managerRef)
			if err != nil {
				return err
			}
			if manager.ID == e.ID {
				return employeeerrors.ErrSelfManager
			}
			e.ManagerID = &manager.ID
			e.Manager = manager
		}

		if err := users.Update(ctx, u); err != nil {
			return err
		}
		if err := repo.Update(ctx, e); err != nil {
			return err
		}
		e.User = u
		updated = e
		return nil
	})
	if err != nil {
		l.Warn("update employee failed", zap.String("employee_id", id.String()), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagEmployees, cache.TagDepartments, cache.TagDashboard)
	if departmentMove && updated.Department != nil {
		s.notifier.Dispatch(ctx, notification.Input{
			UserID:  updated.UserID,
			Type:    notification.TypeDepartmentChanged,
			Title:   "Department changed",
			Message: fmt.Sprintf("You have been moved to %s", updated.Department.Name),
			Link:    "/employees/" + updated.ID.String(),
		})
	}

	l.Info("employee updated", zap.String("employee_id", id.String()))
	return mapToResponse(*updated), nil
}

// Delete deactivates the employee and their user account. Rows are kept so
// task and attendance history still resolve.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	l := contextutil.GetLogger(ctx, s.logger)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		e, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Deactivate(ctx, id); err != nil {
			return err
		}
		return s.users.WithTx(tx).UpdateFields(ctx, e.UserID, map[string]any{"is_active": false})
	})
	if err != nil {
		l.Warn("delete employee failed", zap.String("employee_id", id.String()), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagEmployees, cache.TagDepartments, cache.TagDashboard)
	l.Info("employee deactivated", zap.String("employee_id", id.String()))
	return nil
}

func (s *service) Hierarchy(ctx context.Context) ([]*HierarchyNode, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return BuildHierarchy(rows), nil
}

func (s *service) Stats(ctx context.Context) (EmployeeStats, error) {
	return cache.Remember(ctx, s.cache, statsCacheKey, s.cacheTTL,
		[]string{cache.TagEmployees, cache.TagDashboard},
		func(ctx context.Context) (EmployeeStats, error) {
			rows, err := s.repo.StatsRows(ctx, s.now().Add(-recentHireWindow))
			if err != nil {
				return EmployeeStats{}, err
			}
			return SummarizeStats(rows), nil
		})
}

// UploadAvatar stores the image and points the user at it. The previous
// image is removed best-effort once the new URL is saved.
func (s *service) UploadAvatar(ctx context.Context, actor domain.SessionUser, id uuid.UUID, filename string, r io.Reader) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !actor.CanActOn(e.UserID) {
		return EmployeeResponse{}, employeeerrors.ErrNotOwner
	}
	if s.images == nil {
		return EmployeeResponse{}, employeeerrors.ErrAvatarUploadFailed
	}

	url, err := s.images.Save(ctx, avatarFolder, filename, r)
	if err != nil {
		l.Error("avatar upload failed", zap.String("employee_id", id.String()), zap.Error(err))
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError,
			employeeerrors.ErrAvatarUploadFailed.Message, http.StatusInternalServerError)
	}

	if err := s.users.UpdateFields(ctx, e.UserID, map[string]any{"avatar_url": url}); err != nil {
		if delErr := s.images.Delete(contextutil.Detach(ctx), url); delErr != nil {
			l.Warn("cleanup of new avatar failed", zap.String("url", url), zap.Error(delErr))
		}
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var previous string
	if e.User != nil {
		previous = e.User.AvatarURL
		e.User.AvatarURL = url
	}
	if previous != "" && previous != url {
		if err := s.images.Delete(contextutil.Detach(ctx), previous); err != nil {
			l.Warn("delete previous avatar failed", zap.String("url", previous), zap.Error(err))
		}
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagEmployees)
	return mapToResponse(*e), nil
}

func (s *service) notifyOnboarded(ctx context.Context, e *Employee) {
	inputs := []notification.Input{{
		UserID:  e.UserID,
		Type:    notification.TypeEmployeeOnboarded,
		Title:   "Welcome aboard",
		Message: fmt.Sprintf("Your employee ID is %s", e.EmployeeCode),
		Link:    "/employees/" + e.ID.String(),
	}}
	if e.Manager != nil {
		inputs = append(inputs, notification.Input{
			UserID:  e.Manager.UserID,
			Type:    notification.TypeEmployeeOnboarded,
			Title:   "New team member",
			Message: fmt.Sprintf("%s has joined your team", e.Name()),
			Link:    "/employees/" + e.ID.String(),
		})
	}
	s.notifier.Dispatch(ctx, inputs...)
}

func (s *service) resolveDepartment(ctx context.Context, repo department.Repository, r *ref.Ref) (*department.Department, error) {
	notFound := employeeerrors.ErrDepartmentNotFound.WithMessage("Department '%s' not found", r.Label())

	var (
		dept *department.Department
		err  error
	)
	switch r.Kind {
	case ref.KindID:
		id, perr := r.UUID()
		if perr != nil {
			return nil, notFound
		}
		var row *department.DepartmentWithCount
		if row, err = repo.FindByID(ctx, id); err == nil {
			dept = &row.Department
		}
	default:
		dept, err = repo.FindByName(ctx, r.Value)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	return dept, err
}

func (s *service) resolveManager(ctx context.Context, repo Repository, r *ref.Ref) (*Employee, error) {
	notFound := employeeerrors.ErrManagerNotFound.WithMessage("Manager '%s' not found", r.Label())

	var (
		manager *Employee
		err     error
	)
	switch r.Kind {
	case ref.KindID:
		id, perr := r.UUID()
		if perr != nil {
			return nil, notFound
		}
		manager, err = repo.FindByID(ctx, id)
	default:
		manager, err = repo.FindByName(ctx, r.Value)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	if !manager.IsActive {
		return nil, employeeerrors.ErrManagerNotFound.WithMessage("Manager '%s' is inactive", r.Label())
	}
	return manager, nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
