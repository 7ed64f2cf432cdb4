package models

import "time"

// Flat is the unit visitors are checked in against
type Flat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FlatNumber string    `gorm:"type:varchar(20);not null" json:"flat_number"`
	Floor      int       `json:"floor"`
	BuildingID uint      `gorm:"not null;index" json:"building_id"`
	IsOccupied bool      `gorm:"default:false" json:"is_occupied"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Building  *Building  `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Residents []Resident `gorm:"foreignKey:FlatID" json:"residents,omitempty"`
}
