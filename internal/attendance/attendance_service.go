package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/domain"
	"go-ems/internal/employee"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Office hours in local office time.
var (
	lateAfter  = clock{hour: 9, minute: 15}
	endOfShift = clock{hour: 17}
)

type clock struct {
	hour   int
	minute int
}

func (c clock) on(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.hour, c.minute, 0, 0, t.Location())
}

// EmployeeLookup resolves the employee record linked to a user account.
type EmployeeLookup interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, actor domain.SessionUser, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, actor domain.SessionUser, req CheckOutRequest) (AttendanceResponse, error)
	Today(ctx context.Context, actor domain.SessionUser) (*AttendanceResponse, error)
	List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]AttendanceResponse, int64, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees EmployeeLookup
	cache     cache.Store
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees EmployeeLookup,
	store cache.Store,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if store == nil {
		store = cache.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		cache:     store,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) localNow() time.Time {
	return s.now().In(s.loc)
}

// dateOf returns the calendar day of t as a UTC midnight, which is how
// the date column round-trips through the driver.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) employeeFor(ctx context.Context, actor domain.SessionUser) (*employee.Employee, error) {
	e, err := s.employees.FindByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrNoEmployeeRecord
		}
		return nil, err
	}
	if !e.IsActive {
		return nil, attendanceerrors.ErrNoEmployeeRecord
	}
	return e, nil
}

func (s *service) CheckIn(ctx context.Context, actor domain.SessionUser, req CheckInRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	emp, err := s.employeeFor(ctx, actor)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.localNow()
	record := &Attendance{
		ID:         uuid.New(),
		UserID:     actor.ID,
		EmployeeID: emp.ID,
		Date:       dateOf(now),
		CheckIn:    now,
		Status:     StatusPresent,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	}
	if now.After(lateAfter.on(now)) {
		record.Status = StatusLate
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		_, err := repo.FindByEmployeeAndDate(ctx, emp.ID, record.Date, true)
		switch {
		case err == nil:
			return attendanceerrors.ErrAlreadyCheckedIn
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return repo.Create(ctx, record)
	})
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagAttendance, cache.TagDashboard)
	l.Info("checked in",
		zap.String("employee_id", emp.ID.String()),
		zap.String("status", string(record.Status)),
	)

	record.Employee = emp
	return mapToResponse(*record), nil
}

func (s *service) CheckOut(ctx context.Context, actor domain.SessionUser, req CheckOutRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	emp, err := s.employeeFor(ctx, actor)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.localNow()
	var record *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindByEmployeeAndDate(ctx, emp.ID, dateOf(now), true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrNotCheckedIn
			}
			return err
		}
		if found.CheckOut != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		found.CheckOut = &now
		found.TotalHours = workedHours(found.CheckIn, now)
		if found.Status == StatusPresent && now.Before(endOfShift.on(now)) {
			found.Status = StatusEarlyLeave
		}
		if req.Notes != nil {
			found.Notes = req.Notes
		}
		if req.Latitude != nil && req.Longitude != nil {
			found.Latitude, found.Longitude = req.Latitude, req.Longitude
		}

		record = found
		return repo.Update(ctx, found)
	})
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.cache.Invalidate(contextutil.Detach(ctx), cache.TagAttendance, cache.TagDashboard)
	l.Info("checked out",
		zap.String("employee_id", emp.ID.String()),
		zap.Float64("total_hours", record.TotalHours),
	)

	record.Employee = emp
	return mapToResponse(*record), nil
}

func (s *service) Today(ctx context.Context, actor domain.SessionUser) (*AttendanceResponse, error) {
	emp, err := s.employeeFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, emp.ID, dateOf(s.localNow()), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapRepositoryError(err)
	}

	record.Employee = emp
	resp := mapToResponse(*record)
	return &resp, nil
}

func (s *service) List(ctx context.Context, actor domain.SessionUser, filter ListFilter) ([]AttendanceResponse, int64, error) {
	if !rbac.CanAccess(actor.Role, rbac.FeatureAttendanceReadAll) {
		filter.UserID = &actor.ID
		filter.Department = nil
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list attendance failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	items := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		items[i] = mapToResponse(a)
	}
	return items, total, nil
}

func workedHours(in, out time.Time) float64 {
	h := out.Sub(in).Hours()
	if h < 0 {
		return 0
	}
	return math.Round(h*100) / 100
}
