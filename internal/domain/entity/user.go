package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID   int       `gorm:"not null;index" json:"role_id"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	FullName string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive *bool     `gorm:"not null;default:true;index" json:"is_active"`

	// Pending password reset. Both columns are set together or cleared
	// together; use the PendingReset accessors, never the fields directly.
	ResetToken       *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role    Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// PendingReset returns the pending reset token and expiry, if any.
func (u *User) PendingReset() (token string, expiry time.Time, ok bool) {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil {
		return "", time.Time{}, false
	}
	return *u.ResetToken, *u.ResetTokenExpiry, true
}

// SetPendingReset installs a reset token, replacing any prior pending one.
func (u *User) SetPendingReset(token string, expiry time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
}

// ClearPendingReset removes any pending reset token.
func (u *User) ClearPendingReset() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}
