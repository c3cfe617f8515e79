package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// roleFeatureModel grants a feature (obj) to a role (sub). There is no
// deny effect: anything not listed is refused.
const roleFeatureModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

// NewEnforcer builds an in-memory enforcer seeded with (role, feature) grants.
func NewEnforcer(grants [][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(roleFeatureModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	if len(grants) > 0 {
		if _, err := enforcer.AddPolicies(grants); err != nil {
			return nil, fmt.Errorf("seed rbac policy: %w", err)
		}
	}

	return enforcer, nil
}
