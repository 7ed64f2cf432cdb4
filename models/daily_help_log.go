package models

import "time"

// DailyHelpLog tracks one attendance span of a domestic help staff
// member. An open log (null exit-time) means the staff member is inside.
type DailyHelpLog struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EntryTime      time.Time  `gorm:"not null" json:"entry_time"`
	ExitTime       *time.Time `json:"exit_time"`
	DomesticHelpID uint       `gorm:"not null;index" json:"domestic_help_id"`
	GuardID        *uint      `json:"guard_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	DomesticHelp *DomesticHelp `gorm:"foreignKey:DomesticHelpID" json:"domestic_help,omitempty"`
	Guard        *User         `gorm:"foreignKey:GuardID" json:"guard,omitempty"`
}
