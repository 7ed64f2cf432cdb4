package models

import "time"

// Resident types
const (
	ResidentTypeOwner        = "OWNER"
	ResidentTypeTenant       = "TENANT"
	ResidentTypeFamilyMember = "FAMILY_MEMBER"
)

// Resident links a user to the flat they live in; visitor approvals
// fan out to the active residents of a flat
type Resident struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Email        string    `gorm:"type:varchar(100)" json:"email"`
	ResidentType string    `gorm:"type:varchar(20);not null;default:OWNER" json:"resident_type"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	MoveInDate   time.Time `json:"move_in_date"`
	FlatID       uint      `gorm:"not null;index" json:"flat_id"`
	UserID       *uint     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Flat *Flat `gorm:"foreignKey:FlatID" json:"flat,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
