package middleware

import "blogsapi/internal/entity"

type Policy int

const (
	PolicyAuthenticated Policy = iota
	PolicyUser
	PolicyAdmin
)

// A nil entry means any authenticated caller is allowed.
var policyRoles = map[Policy][]string{
	PolicyAuthenticated: nil,
	PolicyUser:          {entity.RoleUser, entity.RoleAdmin},
	PolicyAdmin:         {entity.RoleAdmin},
}

func (p Policy) String() string {
	switch p {
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyUser:
		return "user"
	case PolicyAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (p Policy) Allows(role string) bool {
	roles, ok := policyRoles[p]
	if !ok {
		return false
	}
	if roles == nil {
		return true
	}
	for _, allowed := range roles {
		if allowed == role {
			return true
		}
	}
	return false
}
