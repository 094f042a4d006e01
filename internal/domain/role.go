package domain

import (
	"fmt"
	"strings"
)

// Role identifies which role-store a record lives in.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ResolutionOrder is the fixed precedence used when no role hint is given.
// A customer record always wins over a vendor or admin with the same identifier.
var ResolutionOrder = []Role{RoleCustomer, RoleVendor, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole parses an optional role hint. An empty string yields "" with no error.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q: %w", s, ErrBadRequest)
	}
	return r, nil
}
