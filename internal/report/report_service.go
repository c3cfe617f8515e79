package report

import (
	"context"
	"fmt"
	"io"
	"time"

	reporterrors "go-ems/internal/report/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/period"

	"go.uber.org/zap"
)

const (
	topPerformerLimit = 10
	recentTaskLimit   = 5
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Attendance(ctx context.Context, q Query) (AttendanceReport, error)
	Tasks(ctx context.Context, q Query) (TaskReport, error)
	Dashboard(ctx context.Context) (DashboardStats, error)
	ExportAttendance(ctx context.Context, q Query, w io.Writer) error
}

type service struct {
	repo   Repository
	cache  cache.Store
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, store cache.Store, ttl time.Duration, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if store == nil {
		store = cache.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		loc:    loc,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) localNow() time.Time {
	return s.now().In(s.loc)
}

func cacheKey(kind string, rng period.Range, q Query) string {
	dept := "all"
	if q.DepartmentID != nil {
		dept = q.DepartmentID.String()
	}
	return fmt.Sprintf("reports:%s:%s:%s:%s:%s",
		kind, rng.Period, rng.Start.Format(time.DateOnly), rng.End.Format(time.DateOnly), dept)
}

func (s *service) Attendance(ctx context.Context, q Query) (AttendanceReport, error) {
	rng, err := period.Resolve(q.Period, q.StartDate, q.EndDate, s.localNow())
	if err != nil {
		return AttendanceReport{}, err
	}

	return cache.Remember(ctx, s.cache, cacheKey("attendance", rng, q), s.ttl,
		[]string{cache.TagAttendance, cache.TagEmployees},
		func(ctx context.Context) (AttendanceReport, error) {
			rows, err := s.repo.AttendanceRows(ctx, rng.Start, rng.End, q.DepartmentID)
			if err != nil {
				contextutil.GetLogger(ctx, s.logger).Error("load attendance rows failed", zap.Error(err))
				return AttendanceReport{}, err
			}

			return AttendanceReport{
				Period:        string(rng.Period),
				StartDate:     rng.Start.Format(time.DateOnly),
				EndDate:       rng.End.Format(time.DateOnly),
				Summary:       SummarizeAttendance(rows),
				ByDepartment:  AttendanceByDepartment(rows),
				Trend:         AttendanceTrend(rows, rng.Bucket, rng.Start, rng.End),
				TopPerformers: TopPerformers(rows, topPerformerLimit),
			}, nil
		})
}

func (s *service) Tasks(ctx context.Context, q Query) (TaskReport, error) {
	now := s.localNow()
	rng, err := period.Resolve(q.Period, q.StartDate, q.EndDate, now)
	if err != nil {
		return TaskReport{}, err
	}

	return cache.Remember(ctx, s.cache, cacheKey("tasks", rng, q), s.ttl,
		[]string{cache.TagTasks, cache.TagEmployees},
		func(ctx context.Context) (TaskReport, error) {
			rows, err := s.repo.TaskRows(ctx, rng.Start, rng.End, q.DepartmentID)
			if err != nil {
				contextutil.GetLogger(ctx, s.logger).Error("load task rows failed", zap.Error(err))
				return TaskReport{}, err
			}

			return TaskReport{
				Period:       string(rng.Period),
				StartDate:    rng.Start.Format(time.DateOnly),
				EndDate:      rng.End.Format(time.DateOnly),
				Summary:      SummarizeTasks(rows, now),
				ByAssignee:   TasksByAssignee(rows),
				ByDepartment: TasksByDepartment(rows),
			}, nil
		})
}

// Dashboard reports headcounts, this month's tasks and today's attendance.
func (s *service) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := s.localNow()
	month, err := period.Resolve(string(period.Month), "", "", now)
	if err != nil {
		return DashboardStats{}, err
	}
	today, err := period.Resolve(string(period.Day), "", "", now)
	if err != nil {
		return DashboardStats{}, err
	}

	key := "reports:dashboard:" + today.Start.Format(time.DateOnly)
	return cache.Remember(ctx, s.cache, key, s.ttl,
		[]string{cache.TagDashboard},
		func(ctx context.Context) (DashboardStats, error) {
			var stats DashboardStats
			var err error

			if stats.ActiveEmployees, err = s.repo.CountActiveEmployees(ctx); err != nil {
				return DashboardStats{}, err
			}
			if stats.Departments, err = s.repo.CountDepartments(ctx); err != nil {
				return DashboardStats{}, err
			}

			tasks, err := s.repo.TaskRows(ctx, month.Start, month.End, nil)
			if err != nil {
				return DashboardStats{}, err
			}
			stats.Tasks = SummarizeTasks(tasks, now)

			todayRows, err := s.repo.AttendanceRows(ctx, today.Start, today.End, nil)
			if err != nil {
				return DashboardStats{}, err
			}
			stats.TodayAttendance = SummarizeAttendance(todayRows)

			recent, err := s.repo.RecentTasks(ctx, recentTaskLimit)
			if err != nil {
				return DashboardStats{}, err
			}
			stats.RecentTasks = make([]RecentTask, len(recent))
			for i, t := range recent {
				stats.RecentTasks[i] = RecentTask{
					ID:        t.ID.String(),
					Title:     t.Title,
					Status:    t.Status,
					Priority:  t.Priority,
					Assignee:  t.AssigneeName,
					CreatedAt: t.CreatedAt,
				}
			}
			return stats, nil
		})
}

func (s *service) ExportAttendance(ctx context.Context, q Query, w io.Writer) error {
	rep, err := s.Attendance(ctx, q)
	if err != nil {
		return err
	}

	if err := RenderAttendancePDF(w, rep, s.localNow()); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render attendance pdf failed", zap.Error(err))
		return apperror.Wrap(err, reporterrors.ErrExportFailed.Code, reporterrors.ErrExportFailed.Message, reporterrors.ErrExportFailed.HTTPStatus)
	}
	return nil
}
