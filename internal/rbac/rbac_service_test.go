package rbac_test

import (
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCanAccess(t *testing.T) {
	cases := []struct {
		role    domain.Role
		feature rbac.Feature
		want    bool
	}{
		{domain.RoleAdmin, rbac.FeatureNotificationsBroadcast, true},
		{domain.RoleManager, rbac.FeatureNotificationsBroadcast, false},
		{domain.RoleManager, rbac.FeatureReportsView, true},
		{domain.RoleEmployee, rbac.FeatureReportsView, false},
		{domain.RoleEmployee, rbac.FeatureEmployeesRead, true},
		{domain.RoleEmployee, rbac.FeatureEmployeesDelete, false},
		{domain.RoleManager, rbac.FeatureDepartmentsManage, false},
		{domain.Role("GUEST"), rbac.FeatureEmployeesRead, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role)+" "+string(tc.feature), func(t *testing.T) {
			assert.Equal(t, tc.want, rbac.CanAccess(tc.role, tc.feature))
		})
	}
}

func TestEnforcerAgreesWithTable(t *testing.T) {
	svc, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)

	for _, role := range domain.Roles {
		for _, f := range rbac.AllFeatures() {
			assert.Equal(t, rbac.CanAccess(role, f), svc.Allowed(role, string(f)),
				"role=%s feature=%s", role, f)
		}
	}
}

func TestUnknownFeatureDenied(t *testing.T) {
	svc, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)

	assert.False(t, svc.Allowed(domain.RoleAdmin, "reports.export_everything"))
	assert.False(t, svc.Allowed(domain.RoleAdmin, ""))
}

func TestPermissions(t *testing.T) {
	svc, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)

	employee := svc.Permissions(domain.RoleEmployee)
	assert.ElementsMatch(t, []rbac.Feature{rbac.FeatureEmployeesRead, rbac.FeatureEmployeesUpdate}, employee)
	assert.Len(t, svc.Permissions(domain.RoleAdmin), len(rbac.AllFeatures()))
}
