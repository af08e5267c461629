package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	IsApproved   bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// CanLogin reflects the approval workflow: an account must be approved
// by an admin and not deactivated before it can sign in.
func (u *User) CanLogin() bool {
	return u.IsActive && u.IsApproved
}
