package models

import "time"

// Society is the multi-tenancy root: every building, flat and staff
// member belongs to exactly one society
type Society struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Address     string    `gorm:"type:varchar(255)" json:"address"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Buildings []Building `gorm:"foreignKey:SocietyID" json:"buildings,omitempty"`
}
