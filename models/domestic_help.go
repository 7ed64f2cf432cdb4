package models

import "time"

// Domestic help types
const (
	HelpTypeMaid   = "MAID"
	HelpTypeDriver = "DRIVER"
	HelpTypeCook   = "COOK"
	HelpTypeNanny  = "NANNY"
	HelpTypeOther  = "OTHER"
)

// DomesticHelp represents daily help staff like maids, drivers and
// cooks. The 6-digit passcode identifies the staff member at the gate
// and lives in a separate code space from pre-approval codes.
type DomesticHelp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	HelpType  string    `gorm:"type:varchar(20);not null" json:"help_type"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	PhotoURL  string    `gorm:"type:varchar(255)" json:"photo_url"`
	PassCode  string    `gorm:"type:varchar(6);uniqueIndex" json:"pass_code"`
	SocietyID uint      `gorm:"not null;index" json:"society_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Society        *Society       `gorm:"foreignKey:SocietyID" json:"-"`
	Flats          []Flat         `gorm:"many2many:flat_domestic_helps" json:"flats,omitempty"`
	AttendanceLogs []DailyHelpLog `gorm:"foreignKey:DomesticHelpID" json:"attendance_logs,omitempty"`
}
