package authorization

type UserRole string

const (
	RoleCitizen           UserRole = "citizen"
	RoleDepartmentOfficer UserRole = "department_officer"
	RoleAdmin             UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsCitizen() bool {
	return r == RoleCitizen
}

// IsStaff reports whether the role triages complaints.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleDepartmentOfficer
}

func (r UserRole) IsValid() bool {
	return r == RoleCitizen || r == RoleDepartmentOfficer || r == RoleAdmin
}

// ParseUserRole maps unknown values to citizen, the least privileged role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCitizen
}
