package report_test

import (
	"testing"
	"time"

	"go-ems/internal/report"
	"go-ems/internal/shared/period"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

var (
	ada   = uuid.New()
	grace = uuid.New()
	linus = uuid.New()
)

func attendanceRows() []report.AttendanceRow {
	return []report.AttendanceRow{
		{EmployeeID: ada, EmployeeName: "Ada", Department: "Engineering", Date: day(4), Status: "PRESENT", TotalHours: 8},
		{EmployeeID: ada, EmployeeName: "Ada", Department: "Engineering", Date: day(5), Status: "LATE", TotalHours: 7.5},
		{EmployeeID: grace, EmployeeName: "Grace", Department: "Engineering", Date: day(4), Status: "EARLY_LEAVE", TotalHours: 5},
		{EmployeeID: grace, EmployeeName: "Grace", Department: "Engineering", Date: day(5), Status: "ABSENT"},
		{EmployeeID: linus, EmployeeName: "Linus", Department: "", Date: day(4), Status: "PRESENT", TotalHours: 9},
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, report.Rate(0, 0))
	assert.Equal(t, 0, report.Rate(3, 0))
	assert.Equal(t, 40, report.Rate(4, 10))
	assert.Equal(t, 67, report.Rate(2, 3))
	assert.Equal(t, 100, report.Rate(5, 5))
	assert.Equal(t, 100, report.Rate(6, 5))
}

func TestSummarizeAttendance(t *testing.T) {
	t.Run("counts statuses", func(t *testing.T) {
		s := report.SummarizeAttendance(attendanceRows())

		assert.Equal(t, 5, s.TotalRecords)
		assert.Equal(t, 2, s.Present)
		assert.Equal(t, 1, s.Late)
		assert.Equal(t, 1, s.EarlyLeave)
		assert.Equal(t, 1, s.Absent)
		assert.Equal(t, 3, s.UniqueEmployees)
		assert.Equal(t, 29.5, s.TotalHours)
		assert.Equal(t, 7.38, s.AverageHours)
		assert.Equal(t, 80, s.AttendanceRate)
	})

	t.Run("empty input", func(t *testing.T) {
		s := report.SummarizeAttendance(nil)
		assert.Equal(t, report.AttendanceSummary{}, s)
	})
}

func TestAttendanceByDepartment(t *testing.T) {
	got := report.AttendanceByDepartment(attendanceRows())
	require.Len(t, got, 2)

	assert.Equal(t, "Engineering", got[0].Department)
	assert.Equal(t, 2, got[0].Employees)
	assert.Equal(t, 4, got[0].TotalRecords)
	assert.Equal(t, 75, got[0].AttendanceRate)
	assert.Equal(t, 6.83, got[0].AverageHours)

	assert.Equal(t, "Unassigned", got[1].Department)
	assert.Equal(t, 100, got[1].AttendanceRate)
}

func TestAttendanceTrend(t *testing.T) {
	t.Run("fills every day in range", func(t *testing.T) {
		got := report.AttendanceTrend(attendanceRows(), period.BucketDay, day(3), day(6))
		require.Len(t, got, 4)

		assert.Equal(t, "2024-03-03", got[0].Key)
		assert.Zero(t, got[0].Total)
		assert.Equal(t, "2024-03-04", got[1].Key)
		assert.Equal(t, 3, got[1].Total)
		assert.Equal(t, 2, got[1].Present)
		assert.Equal(t, 1, got[1].EarlyLeave)
		assert.Equal(t, 1, got[2].Absent)
		assert.Equal(t, "2024-03-06", got[3].Key)
	})

	t.Run("monthly buckets", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
		got := report.AttendanceTrend(attendanceRows(), period.BucketMonth, start, end)
		require.Len(t, got, 12)
		assert.Equal(t, "2024-03", got[2].Key)
		assert.Equal(t, 5, got[2].Total)
	})
}

func TestTopPerformers(t *testing.T) {
	got := report.TopPerformers(attendanceRows(), 0)
	require.Len(t, got, 3)

	// Ada worked two days, Linus one long day, Grace one short day.
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, 2, got[0].PresentDays)
	assert.Equal(t, 1, got[0].LateDays)
	assert.Equal(t, 15.5, got[0].TotalHours)
	assert.Equal(t, "Linus", got[1].Name)
	assert.Equal(t, "Unassigned", got[1].Department)
	assert.Equal(t, "Grace", got[2].Name)

	assert.Len(t, report.TopPerformers(attendanceRows(), 1), 1)
}

func taskRows(total, completed int) []report.TaskRow {
	created := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	rows := make([]report.TaskRow, total)
	for i := range rows {
		rows[i] = report.TaskRow{ID: uuid.New(), Status: "PENDING", CreatedAt: created, UpdatedAt: created}
		if i < completed {
			rows[i].Status = "COMPLETED"
			rows[i].UpdatedAt = created.Add(time.Duration(i+1) * 2 * time.Hour)
		}
	}
	return rows
}

func TestSummarizeTasks(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)

	t.Run("completion rate and average time", func(t *testing.T) {
		s := report.SummarizeTasks(taskRows(10, 4), now)

		assert.Equal(t, 10, s.Total)
		assert.Equal(t, 4, s.Completed)
		assert.Equal(t, 6, s.Pending)
		assert.Equal(t, 40, s.CompletionRate)
		// 2h, 4h, 6h and 8h
		assert.Equal(t, 5.0, s.AverageCompletionHours)
	})

	t.Run("no tasks", func(t *testing.T) {
		s := report.SummarizeTasks(nil, now)
		assert.Zero(t, s.CompletionRate)
		assert.Zero(t, s.AverageCompletionHours)
	})

	t.Run("overdue ignores finished tasks", func(t *testing.T) {
		past := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		rows := []report.TaskRow{
			{Status: "PENDING", DueDate: &past},
			{Status: "IN_PROGRESS", DueDate: &past},
			{Status: "COMPLETED", DueDate: &past},
			{Status: "PENDING"},
		}
		assert.Equal(t, 2, report.SummarizeTasks(rows, now).Overdue)
	})
}

func TestTasksByAssignee(t *testing.T) {
	rows := []report.TaskRow{
		{AssigneeID: &ada, AssigneeName: "Ada", Status: "COMPLETED"},
		{AssigneeID: &ada, AssigneeName: "Ada", Status: "IN_PROGRESS"},
		{AssigneeID: &grace, AssigneeName: "Grace", Status: "COMPLETED"},
		{Status: "PENDING"},
	}

	got := report.TasksByAssignee(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, 50, got[0].CompletionRate)
	assert.Equal(t, "Grace", got[1].Name)
	assert.Equal(t, 100, got[1].CompletionRate)
	assert.Equal(t, "Unassigned", got[2].Name)
	assert.Nil(t, got[2].AssigneeID)
}

func TestTasksByDepartment(t *testing.T) {
	rows := []report.TaskRow{
		{Department: "Engineering", Status: "COMPLETED"},
		{Department: "Engineering", Status: "PENDING"},
		{Department: "Engineering", Status: "PENDING"},
		{Status: "COMPLETED"},
	}

	got := report.TasksByDepartment(rows)
	require.Len(t, got, 2)
	assert.Equal(t, report.DepartmentTasks{Department: "Engineering", Total: 3, Completed: 1, CompletionRate: 33}, got[0])
	assert.Equal(t, report.DepartmentTasks{Department: "Unassigned", Total: 1, Completed: 1, CompletionRate: 100}, got[1])
}
