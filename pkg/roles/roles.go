package roles

import "strings"

// Role is the backend user role as reported by /api/auth/me/.
type Role string

const (
	Clerk Role = "Clerk"
	Staff Role = "Staff"
	Admin Role = "Admin"
)

// HierarchyLevel orders roles from least to most privileged.
type HierarchyLevel int

const (
	NoLevel    HierarchyLevel = 0
	ClerkLevel HierarchyLevel = 1
	StaffLevel HierarchyLevel = 2
	AdminLevel HierarchyLevel = 3
)

// Parse accepts any casing ("admin", "ADMIN") and returns the canonical role.
func Parse(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "clerk":
		return Clerk, true
	case "staff":
		return Staff, true
	case "admin":
		return Admin, true
	default:
		return "", false
	}
}

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Clerk:
		return ClerkLevel
	case Staff:
		return StaffLevel
	case Admin:
		return AdminLevel
	default:
		return NoLevel
	}
}

// HasPermission reports whether r is at least requiredRole. Unknown roles have no permissions.
func (r Role) HasPermission(requiredRole Role) bool {
	level := r.GetHierarchyLevel()
	return level != NoLevel && level >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Clerk, Staff, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
