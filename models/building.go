package models

import "time"

// Building groups flats inside a society
type Building struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Floors    int       `json:"floors"`
	SocietyID uint      `gorm:"not null;index" json:"society_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Society *Society `gorm:"foreignKey:SocietyID" json:"society,omitempty"`
	Flats   []Flat   `gorm:"foreignKey:BuildingID" json:"flats,omitempty"`
}
