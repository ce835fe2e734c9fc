package user

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
	RoleITAdmin  Role = "it_admin"
	RoleBPMStaff Role = "bpm_staff"
)

// User is an actor; it feeds the authorization predicates and recipient
// resolution, nothing else.
type User struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID     string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name       string         `gorm:"size:255" json:"name"`
	Email      string         `gorm:"size:255" json:"email"`
	GradeLevel int            `gorm:"column:grade_level" json:"grade_level"`
	Roles      string         `gorm:"size:255" json:"roles"` // comma-separated role names
	IsAdmin    bool           `gorm:"column:is_admin" json:"is_admin"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) RoleList() []Role {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	out := make([]Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, Role(p))
		}
	}
	return out
}

func (u *User) HasRole(r Role) bool {
	for _, have := range u.RoleList() {
		if have == r {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
