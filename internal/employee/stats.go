package employee

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SummarizeStats folds grouped rows into headline numbers. Only active
// employees count toward departments, recent hires and average salary.
func SummarizeStats(rows []StatsRow) EmployeeStats {
	stats := EmployeeStats{
		AverageSalary: decimal.Zero,
		ByStatus:      map[Status]int64{},
		ByDepartment:  []DepartmentCount{},
	}

	perDept := map[string]int64{}
	salaries := decimal.Zero
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[row.Status] += row.Count
		if !row.IsActive {
			stats.Inactive += row.Count
			continue
		}
		stats.Active += row.Count
		stats.RecentHires += row.RecentHires
		salaries = salaries.Add(row.SalarySum)

		name := row.DepartmentName
		if name == "" {
			name = "Unassigned"
		}
		perDept[name] += row.Count
	}

	if stats.Active > 0 {
		stats.AverageSalary = salaries.Div(decimal.NewFromInt(stats.Active)).Round(2)
	}

	for name, count := range perDept {
		stats.ByDepartment = append(stats.ByDepartment, DepartmentCount{Department: name, Count: count})
	}
	sort.Slice(stats.ByDepartment, func(i, j int) bool {
		a, b := stats.ByDepartment[i], stats.ByDepartment[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Department < b.Department
	})
	return stats
}
