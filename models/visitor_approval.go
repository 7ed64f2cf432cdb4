package models

import "time"

// VisitorApproval is one resident's pending decision on one visit.
// Created only when no grant auto-approves the check-in; one row per
// (visitor log, resident) pair.
type VisitorApproval struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Status        string     `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	RequestedAt   time.Time  `gorm:"not null" json:"requested_at"`
	RespondedAt   *time.Time `json:"responded_at"`
	VisitorLogID  uint       `gorm:"not null;uniqueIndex:idx_log_resident" json:"visitor_log_id"`
	ResidentID    uint       `gorm:"not null;uniqueIndex:idx_log_resident" json:"resident_id"`
	RequestedByID *uint      `json:"requested_by_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	VisitorLog  *VisitorLog `gorm:"foreignKey:VisitorLogID" json:"visitor_log,omitempty"`
	Resident    *Resident   `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	RequestedBy *User       `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`
}
