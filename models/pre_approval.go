package models

import "time"

// PreApproval is a single-use, time-boxed entry grant issued by a
// resident. The 6-digit code is unique among unused grants and the
// IsUsed flag only ever flips from false to true.
type PreApproval struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VisitorName  string    `gorm:"type:varchar(100);not null" json:"visitor_name"`
	VisitorPhone string    `gorm:"type:varchar(20);not null" json:"visitor_phone"`
	Category     string    `gorm:"type:varchar(20);not null;default:GUEST" json:"category"`
	ValidFrom    time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil   time.Time `gorm:"not null" json:"valid_until"`
	Code         string    `gorm:"type:varchar(6);index" json:"code"`
	IsUsed       bool      `gorm:"default:false" json:"is_used"`
	ResidentID   uint      `gorm:"not null" json:"resident_id"`
	FlatID       uint      `gorm:"not null;index" json:"flat_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Resident *Resident `gorm:"foreignKey:ResidentID" json:"-"`
	Flat     *Flat     `gorm:"foreignKey:FlatID" json:"-"`
}
