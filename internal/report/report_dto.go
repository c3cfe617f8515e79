package report

import (
	"time"

	"github.com/google/uuid"
)

// Query selects the rows a report folds over.
type Query struct {
	Period       string
	StartDate    string
	EndDate      string
	DepartmentID *uuid.UUID
}

// AttendanceRow is one attendance record joined with its employee.
type AttendanceRow struct {
	EmployeeID   uuid.UUID
	EmployeeCode string
	EmployeeName string
	Department   string
	Date         time.Time
	Status       string
	TotalHours   float64
}

// TaskRow is one task joined with its assignee and the assignee's department.
type TaskRow struct {
	ID           uuid.UUID
	Title        string
	Status       string
	Priority     string
	AssigneeID   *uuid.UUID
	AssigneeName string
	Department   string
	DueDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AttendanceSummary struct {
	TotalRecords    int     `json:"totalRecords"`
	Present         int     `json:"present"`
	Late            int     `json:"late"`
	EarlyLeave      int     `json:"earlyLeave"`
	Absent          int     `json:"absent"`
	UniqueEmployees int     `json:"uniqueEmployees"`
	TotalHours      float64 `json:"totalHours"`
	AverageHours    float64 `json:"averageHours"`
	AttendanceRate  int     `json:"attendanceRate"`
}

type DepartmentAttendance struct {
	Department     string  `json:"department"`
	Employees      int     `json:"employees"`
	TotalRecords   int     `json:"totalRecords"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	EarlyLeave     int     `json:"earlyLeave"`
	Absent         int     `json:"absent"`
	AverageHours   float64 `json:"averageHours"`
	AttendanceRate int     `json:"attendanceRate"`
}

type TrendPoint struct {
	Key        string `json:"date"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	EarlyLeave int    `json:"earlyLeave"`
	Absent     int    `json:"absent"`
}

type Performer struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeCode string  `json:"employeeCode"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	PresentDays  int     `json:"presentDays"`
	LateDays     int     `json:"lateDays"`
	TotalHours   float64 `json:"totalHours"`
}

type AttendanceReport struct {
	Period        string                 `json:"period"`
	StartDate     string                 `json:"startDate"`
	EndDate       string                 `json:"endDate"`
	Summary       AttendanceSummary      `json:"summary"`
	ByDepartment  []DepartmentAttendance `json:"byDepartment"`
	Trend         []TrendPoint           `json:"trend"`
	TopPerformers []Performer            `json:"topPerformers"`
}

type TaskSummary struct {
	Total                  int     `json:"total"`
	Pending                int     `json:"pending"`
	InProgress             int     `json:"inProgress"`
	Completed              int     `json:"completed"`
	Cancelled              int     `json:"cancelled"`
	Overdue                int     `json:"overdue"`
	CompletionRate         int     `json:"completionRate"`
	AverageCompletionHours float64 `json:"averageCompletionHours"`
}

type AssigneeTasks struct {
	AssigneeID     *string `json:"assigneeId"`
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"inProgress"`
	Completed      int     `json:"completed"`
	CompletionRate int     `json:"completionRate"`
}

type DepartmentTasks struct {
	Department     string `json:"department"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completionRate"`
}

type TaskReport struct {
	Period       string            `json:"period"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	Summary      TaskSummary       `json:"summary"`
	ByAssignee   []AssigneeTasks   `json:"byAssignee"`
	ByDepartment []DepartmentTasks `json:"byDepartment"`
}

type RecentTask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Assignee  string    `json:"assignee,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardStats struct {
	ActiveEmployees int64             `json:"activeEmployees"`
	Departments     int64             `json:"departments"`
	Tasks           TaskSummary       `json:"tasks"`
	TodayAttendance AttendanceSummary `json:"todayAttendance"`
	RecentTasks     []RecentTask      `json:"recentTasks"`
}
