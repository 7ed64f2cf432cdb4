package models

import "time"

// Approval workflow status
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Derived display statuses
const (
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
)

// Visitor categories
const (
	CategoryGuest    = "GUEST"
	CategoryDelivery = "DELIVERY"
	CategoryCab      = "CAB"
	CategoryMaid     = "MAID"
	CategoryVendor   = "VENDOR"
	CategoryService  = "SERVICE"
	CategoryOther    = "OTHER"
)

// VisitorLog records one physical visit to one flat. InTime is set at
// creation and never changes; OutTime is set exactly once at check-out.
type VisitorLog struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Category        string     `gorm:"type:varchar(20);not null;default:GUEST" json:"category"`
	Purpose         string     `gorm:"type:varchar(200)" json:"purpose"`
	VehicleNumber   string     `gorm:"type:varchar(20)" json:"vehicle_number"`
	InTime          time.Time  `gorm:"not null" json:"in_time"`
	OutTime         *time.Time `json:"out_time"`
	ExpectedOutTime *time.Time `json:"expected_out_time"`
	Status          string     `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	GateEntry       string     `gorm:"type:varchar(50)" json:"gate_entry"`
	VisitorID       uint       `gorm:"not null;index" json:"visitor_id"`
	FlatID          uint       `gorm:"not null;index" json:"flat_id"`
	CheckedInByID   *uint      `json:"checked_in_by_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Visitor     *Visitor          `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Flat        *Flat             `gorm:"foreignKey:FlatID" json:"flat,omitempty"`
	CheckedInBy *User             `gorm:"foreignKey:CheckedInByID" json:"checked_in_by,omitempty"`
	Approvals   []VisitorApproval `gorm:"foreignKey:VisitorLogID" json:"approvals,omitempty"`
}

// DisplayStatus derives the status shown on gate dashboards:
// CHECKED_OUT once the out-time is set, CHECKED_IN while an approved
// visitor is inside, otherwise the raw approval status.
func (l *VisitorLog) DisplayStatus() string {
	if l.OutTime != nil {
		return StatusCheckedOut
	}
	if l.Status == StatusApproved {
		return StatusCheckedIn
	}
	return l.Status
}
