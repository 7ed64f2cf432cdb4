package models

import (
	"time"

	"gorm.io/gorm"

	"gatekeeper-http-service/utils"
)

// User roles recognized by the auth middleware
const (
	RoleAdmin    = "admin"
	RoleGuard    = "guard"
	RoleResident = "resident"
)

// User represents an account that can authenticate against the service:
// admins, security guards and residents all map onto one users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:resident" json:"role"`
	SocietyID *uint     `json:"society_id"`
	FlatID    *uint     `json:"flat_id"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that runs before a new record is inserted
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Password != "" {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave is a GORM hook that runs before a record is saved
func (u *User) BeforeSave(tx *gorm.DB) error {
	// bcrypt hashes are 60 chars; shorter means a plain-text password came in
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
