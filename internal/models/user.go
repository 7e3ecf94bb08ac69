package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user model in the database. Email is the login
// identifier.
type User struct {
	Base
	Email            string           `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Password         string           `gorm:"not null" json:"-"`
	FirstName        string           `gorm:"size:100" json:"first_name"`
	LastName         string           `gorm:"size:100" json:"last_name"`
	Role             Role             `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive         bool             `gorm:"not null;default:false" json:"is_active"`
	TwoFactorEnabled bool             `gorm:"column:two_fa;default:false" json:"two_factor_enabled"`
	LastLogin        time.Time        `json:"last_login"`
	FinancialStatus  *FinancialStatus `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave refreshes LastLogin on every write of the row.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.LastLogin = time.Now()
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail trims surrounding whitespace and lower-cases the domain
// part. The local part is left untouched since some mail servers treat it
// as case-sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
