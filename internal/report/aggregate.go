package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"go-ems/internal/attendance"
	"go-ems/internal/shared/period"
	"go-ems/internal/task"

	"github.com/google/uuid"
)

const unassigned = "Unassigned"

// Rate returns num/den as a whole percentage in [0,100]. A zero
// denominator yields 0.
func Rate(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	r := int(math.Round(float64(num) * 100 / float64(den)))
	return min(r, 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func departmentName(name string) string {
	if strings.TrimSpace(name) == "" {
		return unassigned
	}
	return name
}

// attended reports whether the record counts as a day at work. Late
// arrivals and early leavers were present.
func attended(status string) bool {
	return status != string(attendance.StatusAbsent)
}

type attendanceTally struct {
	total, present, late, earlyLeave, absent int

	// worked counts every record that is not ABSENT
	worked int
	hours  float64
}

func (t *attendanceTally) add(r AttendanceRow) {
	t.total++
	switch attendance.Status(r.Status) {
	case attendance.StatusPresent:
		t.present++
	case attendance.StatusLate:
		t.late++
	case attendance.StatusEarlyLeave:
		t.earlyLeave++
	case attendance.StatusAbsent:
		t.absent++
	}
	if attended(r.Status) {
		t.worked++
		t.hours += r.TotalHours
	}
}

func (t attendanceTally) averageHours() float64 {
	if t.worked == 0 {
		return 0
	}
	return round2(t.hours / float64(t.worked))
}

func (t attendanceTally) rate() int {
	return Rate(t.worked, t.total)
}

// SummarizeAttendance folds rows into overall counts. Average hours are
// taken over the records that were worked.
func SummarizeAttendance(rows []AttendanceRow) AttendanceSummary {
	var t attendanceTally
	employees := make(map[uuid.UUID]struct{})
	for _, r := range rows {
		t.add(r)
		employees[r.EmployeeID] = struct{}{}
	}

	return AttendanceSummary{
		TotalRecords:    t.total,
		Present:         t.present,
		Late:            t.late,
		EarlyLeave:      t.earlyLeave,
		Absent:          t.absent,
		UniqueEmployees: len(employees),
		TotalHours:      round2(t.hours),
		AverageHours:    t.averageHours(),
		AttendanceRate:  t.rate(),
	}
}

// AttendanceByDepartment groups rows by department name, sorted by name.
func AttendanceByDepartment(rows []AttendanceRow) []DepartmentAttendance {
	tallies := make(map[string]*attendanceTally)
	employees := make(map[string]map[uuid.UUID]struct{})
	for _, r := range rows {
		name := departmentName(r.Department)
		t, ok := tallies[name]
		if !ok {
			t = &attendanceTally{}
			tallies[name] = t
			employees[name] = make(map[uuid.UUID]struct{})
		}
		t.add(r)
		employees[name][r.EmployeeID] = struct{}{}
	}

	out := make([]DepartmentAttendance, 0, len(tallies))
	for name, t := range tallies {
		out = append(out, DepartmentAttendance{
			Department:     name,
			Employees:      len(employees[name]),
			TotalRecords:   t.total,
			Present:        t.present,
			Late:           t.late,
			EarlyLeave:     t.earlyLeave,
			Absent:         t.absent,
			AverageHours:   t.averageHours(),
			AttendanceRate: t.rate(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// AttendanceTrend buckets rows by day (or month) across [start,end].
// Buckets with no records are included with zero counts.
func AttendanceTrend(rows []AttendanceRow, bucket period.Bucket, start, end time.Time) []TrendPoint {
	points := make(map[string]*TrendPoint)
	var keys []string
	for cur := start; !cur.After(end); cur = step(bucket, cur) {
		k := bucket.Key(cur)
		if _, ok := points[k]; !ok {
			points[k] = &TrendPoint{Key: k}
			keys = append(keys, k)
		}
	}

	for _, r := range rows {
		k := bucket.Key(r.Date)
		p, ok := points[k]
		if !ok {
			p = &TrendPoint{Key: k}
			points[k] = p
			keys = append(keys, k)
		}
		p.Total++
		switch attendance.Status(r.Status) {
		case attendance.StatusPresent:
			p.Present++
		case attendance.StatusLate:
			p.Late++
		case attendance.StatusEarlyLeave:
			p.EarlyLeave++
		case attendance.StatusAbsent:
			p.Absent++
		}
	}

	sort.Strings(keys)
	out := make([]TrendPoint, len(keys))
	for i, k := range keys {
		out[i] = *points[k]
	}
	return out
}

func step(bucket period.Bucket, t time.Time) time.Time {
	if bucket == period.BucketMonth {
		return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	}
	return t.AddDate(0, 0, 1)
}

// TopPerformers ranks employees by days worked, then total hours, then
// name. A limit of zero or less returns everyone.
func TopPerformers(rows []AttendanceRow, limit int) []Performer {
	byEmployee := make(map[uuid.UUID]*Performer)
	for _, r := range rows {
		p, ok := byEmployee[r.EmployeeID]
		if !ok {
			p = &Performer{
				EmployeeID:   r.EmployeeID.String(),
				EmployeeCode: r.EmployeeCode,
				Name:         r.EmployeeName,
				Department:   departmentName(r.Department),
			}
			byEmployee[r.EmployeeID] = p
		}
		if !attended(r.Status) {
			continue
		}
		p.PresentDays++
		p.TotalHours += r.TotalHours
		if r.Status == string(attendance.StatusLate) {
			p.LateDays++
		}
	}

	out := make([]Performer, 0, len(byEmployee))
	for _, p := range byEmployee {
		p.TotalHours = round2(p.TotalHours)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PresentDays != b.PresentDays {
			return a.PresentDays > b.PresentDays
		}
		if a.TotalHours != b.TotalHours {
			return a.TotalHours > b.TotalHours
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SummarizeTasks counts tasks by status. Completion time is approximated
// as updatedAt - createdAt of completed tasks.
func SummarizeTasks(rows []TaskRow, now time.Time) TaskSummary {
	var s TaskSummary
	var completedHours float64
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, r := range rows {
		s.Total++
		st := task.Status(r.Status)
		switch st {
		case task.StatusPending:
			s.Pending++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusCompleted:
			s.Completed++
			completedHours += r.UpdatedAt.Sub(r.CreatedAt).Hours()
		case task.StatusCancelled:
			s.Cancelled++
		}
		if r.DueDate != nil && !st.IsTerminal() && r.DueDate.Before(today) {
			s.Overdue++
		}
	}

	s.CompletionRate = Rate(s.Completed, s.Total)
	if s.Completed > 0 {
		s.AverageCompletionHours = round2(completedHours / float64(s.Completed))
	}
	return s
}

// TasksByAssignee groups tasks by assignee. Unassigned tasks share one
// group. Sorted by total descending, then name.
func TasksByAssignee(rows []TaskRow) []AssigneeTasks {
	groups := make(map[string]*AssigneeTasks)
	var order []string
	for _, r := range rows {
		key := ""
		if r.AssigneeID != nil {
			key = r.AssigneeID.String()
		}
		g, ok := groups[key]
		if !ok {
			g = &AssigneeTasks{Name: unassigned}
			if r.AssigneeID != nil {
				id := key
				g.AssigneeID = &id
				g.Name = r.AssigneeName
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Total++
		switch task.Status(r.Status) {
		case task.StatusPending:
			g.Pending++
		case task.StatusInProgress:
			g.InProgress++
		case task.StatusCompleted:
			g.Completed++
		}
	}

	out := make([]AssigneeTasks, 0, len(order))
	for _, k := range order {
		g := groups[k]
		g.CompletionRate = Rate(g.Completed, g.Total)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// TasksByDepartment groups tasks by the assignee's department.
func TasksByDepartment(rows []TaskRow) []DepartmentTasks {
	groups := make(map[string]*DepartmentTasks)
	for _, r := range rows {
		name := departmentName(r.Department)
		g, ok := groups[name]
		if !ok {
			g = &DepartmentTasks{Department: name}
			groups[name] = g
		}
		g.Total++
		if r.Status == string(task.StatusCompleted) {
			g.Completed++
		}
	}

	out := make([]DepartmentTasks, 0, len(groups))
	for _, g := range groups {
		g.CompletionRate = Rate(g.Completed, g.Total)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}
