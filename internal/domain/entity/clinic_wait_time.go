package entity

import "time"

// WaitTimeTextMaxLength is the longest accepted wait-time text.
const WaitTimeTextMaxLength = 50

// ClinicWaitTime is the single world-readable wait-time record. Exactly
// one row exists (ID 1); writes replace it in place.
type ClinicWaitTime struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	Text      string    `gorm:"type:varchar(50);not null" json:"text"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ClinicWaitTime) TableName() string {
	return "clinic_wait_times"
}

// WaitTimeSingletonID is the fixed primary key of the singleton row.
const WaitTimeSingletonID = 1
