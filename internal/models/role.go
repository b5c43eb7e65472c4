package models

// Role comes from the upstream identity provider; this service only
// distinguishes admins from everyone else.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
