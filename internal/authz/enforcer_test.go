package authz_test

import (
	"testing"

	"go-tams/internal/authz"

	"github.com/stretchr/testify/assert"
)

func TestEnforcerPolicies(t *testing.T) {
	e, err := authz.NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		role, obj, act string
		allowed        bool
	}{
		{"employee", "attendance", "create", true},
		{"employee", "leave", "create", true},
		{"employee", "leave", "approve", false},
		{"employee", "attendance", "update", false},
		{"employee", "attendance", "read_all", false},
		{"hr", "leave", "approve", true},
		{"hr", "attendance", "update", true},
		{"hr", "attendance", "create", true}, // inherited from employee
		{"admin", "leave", "approve", true},  // inherited from hr
		{"admin", "leave", "comment", true},
		{"unknown", "leave", "read", false},
	}

	for _, tc := range cases {
		ok, err := e.Enforce(tc.role, tc.obj, tc.act)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, ok, "%s %s %s", tc.role, tc.obj, tc.act)
	}
}
