package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleEmployee   = "employee"
)

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Password       string     `json:"-" gorm:"not null"`
	Role           string     `json:"role" gorm:"type:varchar(16);default:'employee'"`
	AdminID        *uint      `json:"admin_id" gorm:"index"`
	ManagerID      *uint      `json:"manager_id"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	TrialEndsAt    *time.Time `json:"trial_ends_at"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IPAddress      string     `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Admin    *User    `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Manager  *User    `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Settings *Setting `json:"settings,omitempty" gorm:"foreignKey:AdminID"`
}

func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsManager() bool    { return u.Role == RoleManager }
func (u *User) IsEmployee() bool   { return u.Role == RoleEmployee }

// TenantID returns the admin account every record of this user's tenant
// is scoped under: the user's own id for admins, the owning admin's id
// for managers and employees.
func (u *User) TenantID() uint {
	if u.IsAdmin() || u.IsSuperAdmin() {
		return u.ID
	}
	if u.AdminID != nil {
		return *u.AdminID
	}
	return u.ID
}

// Scope is the tenant/assignment visibility of a user. AssignedTo is
// non-nil for employees, who only see orders assigned to them.
type Scope struct {
	AdminID    uint
	AssignedTo *uint
}

// ScopeFor resolves the order visibility for a user in one place instead
// of re-deriving role checks per query.
func ScopeFor(u *User) Scope {
	s := Scope{AdminID: u.TenantID()}
	if u.IsEmployee() {
		id := u.ID
		s.AssignedTo = &id
	}
	return s
}
