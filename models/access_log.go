package models

import "time"

// Access actions
const (
	AccessEntry = "ENTRY"
	AccessExit  = "EXIT"
)

// AccessLog is a single toggle event for a resident or a staff member.
// There is no "currently inside" flag anywhere: presence is derived from
// the most recent log for a subject, alternating on each scan.
type AccessLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `gorm:"index" json:"user_id"`
	DomesticHelpID *uint     `gorm:"index" json:"domestic_help_id"`
	AccessType     string    `gorm:"type:varchar(10);not null" json:"access_type"`
	Timestamp      time.Time `gorm:"not null;index" json:"timestamp"`
	ScannedBy      string    `gorm:"type:varchar(100)" json:"scanned_by"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DomesticHelp *DomesticHelp `gorm:"foreignKey:DomesticHelpID" json:"domestic_help,omitempty"`
}
