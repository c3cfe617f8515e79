package rbac

import (
	"sort"

	"go-ems/internal/domain"
)

type Feature string

const (
	FeatureEmployeesRead          Feature = "employees.read"
	FeatureEmployeesCreate        Feature = "employees.create"
	FeatureEmployeesUpdate        Feature = "employees.update"
	FeatureEmployeesDelete        Feature = "employees.delete"
	FeatureEmployeesStats         Feature = "employees.stats"
	FeatureDepartmentsManage      Feature = "departments.manage"
	FeatureTasksAssign            Feature = "tasks.assign"
	FeatureTasksReadAll           Feature = "tasks.read_all"
	FeatureAttendanceReadAll      Feature = "attendance.read_all"
	FeatureAttendanceReports      Feature = "attendance.reports"
	FeatureReportsView            Feature = "reports.view"
	FeatureNotificationsBroadcast Feature = "notifications.broadcast"
	FeatureUsersManage            Feature = "users.manage"
)

// decisionTable is the complete role x feature matrix. A pair that is not
// listed is denied.
var decisionTable = map[domain.Role]map[Feature]bool{
	domain.RoleAdmin: {
		FeatureEmployeesRead:          true,
		FeatureEmployeesCreate:        true,
		FeatureEmployeesUpdate:        true,
		FeatureEmployeesDelete:        true,
		FeatureEmployeesStats:         true,
		FeatureDepartmentsManage:      true,
		FeatureTasksAssign:            true,
		FeatureTasksReadAll:           true,
		FeatureAttendanceReadAll:      true,
		FeatureAttendanceReports:      true,
		FeatureReportsView:            true,
		FeatureNotificationsBroadcast: true,
		FeatureUsersManage:            true,
	},
	domain.RoleManager: {
		FeatureEmployeesRead:     true,
		FeatureEmployeesCreate:   true,
		FeatureEmployeesUpdate:   true,
		FeatureEmployeesStats:    true,
		FeatureTasksAssign:       true,
		FeatureTasksReadAll:      true,
		FeatureAttendanceReadAll: true,
		FeatureAttendanceReports: true,
		FeatureReportsView:       true,
	},
	domain.RoleEmployee: {
		// record-level scoping for employees happens in the services
		FeatureEmployeesRead:   true,
		FeatureEmployeesUpdate: true,
	},
}

var allFeatures = []Feature{
	FeatureEmployeesRead,
	FeatureEmployeesCreate,
	FeatureEmployeesUpdate,
	FeatureEmployeesDelete,
	FeatureEmployeesStats,
	FeatureDepartmentsManage,
	FeatureTasksAssign,
	FeatureTasksReadAll,
	FeatureAttendanceReadAll,
	FeatureAttendanceReports,
	FeatureReportsView,
	FeatureNotificationsBroadcast,
	FeatureUsersManage,
}

func AllFeatures() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

func ParseFeature(raw string) (Feature, bool) {
	f := Feature(raw)
	for _, known := range allFeatures {
		if known == f {
			return f, true
		}
	}
	return "", false
}

// CanAccess is the single decision point for role x feature checks.
func CanAccess(role domain.Role, feature Feature) bool {
	return decisionTable[role][feature]
}

// FeaturesFor lists the features granted to role in a stable order.
func FeaturesFor(role domain.Role) []Feature {
	out := make([]Feature, 0, len(decisionTable[role]))
	for f, ok := range decisionTable[role] {
		if ok {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Grants flattens the table into casbin policy rows.
func Grants() [][]string {
	rows := make([][]string, 0)
	for _, role := range domain.Roles {
		for _, f := range FeaturesFor(role) {
			rows = append(rows, []string{string(role), string(f)})
		}
	}
	return rows
}
