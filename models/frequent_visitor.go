package models

import "time"

// FrequentVisitor is a recurring entry grant for regulars like domestic
// help or delivery persons. Bound to one (visitor, flat) pair; consulted
// on every check-in but never consumed.
type FrequentVisitor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VisitorID   uint      `gorm:"not null;uniqueIndex:idx_visitor_flat" json:"visitor_id"`
	FlatID      uint      `gorm:"not null;uniqueIndex:idx_visitor_flat" json:"flat_id"`
	Category    string    `gorm:"type:varchar(20);not null" json:"category"`
	Purpose     string    `gorm:"type:varchar(100)" json:"purpose"`
	ValidFrom   time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil  time.Time `gorm:"not null" json:"valid_until"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Visitor   *Visitor  `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Flat      *Flat     `gorm:"foreignKey:FlatID" json:"flat,omitempty"`
	CreatedBy *Resident `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
