package models

import "time"

// Visitor is the identity record for anyone walking up to a gate.
// Phone number is the natural key: repeat visits with the same phone
// update this record instead of creating a new one.
type Visitor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FullName      string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	IDProofType   string    `gorm:"type:varchar(50)" json:"id_proof_type"`
	IDProofNumber string    `gorm:"type:varchar(50)" json:"id_proof_number"`
	PhotoURL      string    `gorm:"type:varchar(255)" json:"photo_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	VisitorLogs []VisitorLog `gorm:"foreignKey:VisitorID" json:"visitor_logs,omitempty"`
}
