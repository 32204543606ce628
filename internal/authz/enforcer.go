package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

type Enforcer = casbin.Enforcer

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the role enforcer with the fixed policy set. Roles are
// static (employee, hr, admin), so policies live in code rather than a
// management surface.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"employee", "attendance", "create"},
		{"employee", "attendance", "read"},
		{"employee", "leave", "create"},
		{"employee", "leave", "read"},
		{"employee", "leave", "comment"},
		{"hr", "attendance", "read_all"},
		{"hr", "attendance", "update"},
		{"hr", "leave", "read_all"},
		{"hr", "leave", "approve"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	// hr inherits employee, admin inherits hr
	groupings := [][]string{
		{"hr", "employee"},
		{"admin", "hr"},
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}

	return e, nil
}
