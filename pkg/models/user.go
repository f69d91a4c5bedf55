package models

import "github.com/jayeuse/Inventory-System-sub000/pkg/roles"

type Account struct {
	ID        int    `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

type UserInfo struct {
	UserInfoID         string     `json:"user_info_id"`
	User               Account    `json:"user"`
	Role               roles.Role `json:"role"`
	FullName           string     `json:"full_name"`
	CreatedAtFormatted string     `json:"created_at_formatted,omitempty"`
}

// Name prefers the server-provided full name.
func (u UserInfo) Name() string {
	if u.FullName != "" {
		return u.FullName
	}
	switch {
	case u.User.FirstName != "" && u.User.LastName != "":
		return u.User.FirstName + " " + u.User.LastName
	case u.User.FirstName != "":
		return u.User.FirstName
	default:
		return u.User.LastName
	}
}

func (u UserInfo) ActiveLabel() string {
	if u.User.IsActive {
		return "active"
	}
	return "inactive"
}

type CreateUserRequest struct {
	Username        string     `json:"username" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	FirstName       string     `json:"first_name" validate:"required"`
	LastName        string     `json:"last_name" validate:"required"`
	Role            roles.Role `json:"role" validate:"required,oneof=Admin Staff Clerk"`
	Password        string     `json:"password" validate:"required,min=8"`
	ConfirmPassword string     `json:"confirm_password" validate:"required,eqfield=Password"`
}

type UpdateUserRequest struct {
	Email     *string     `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string     `json:"first_name,omitempty"`
	LastName  *string     `json:"last_name,omitempty"`
	Role      *roles.Role `json:"role,omitempty" validate:"omitempty,oneof=Admin Staff Clerk"`
	Password  *string     `json:"password,omitempty" validate:"omitempty,min=8"`
}

// CurrentUser is the /api/auth/me/ payload.
type CurrentUser struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        roles.Role `json:"role"`
	IsSuperuser bool       `json:"is_superuser"`
}

// EffectiveRole treats superusers as admins.
func (c CurrentUser) EffectiveRole() roles.Role {
	if c.IsSuperuser {
		return roles.Admin
	}
	return c.Role
}
