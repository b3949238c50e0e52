package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Patient represents patient-specific clinical data linked to a user account
type Patient struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	MedicalRecordNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"medical_record_number"`
	PhoneNumber         string    `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	DateOfBirth         time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender              string    `gorm:"type:char(1);not null" json:"gender"`
	Address             string    `gorm:"type:text" json:"address,omitempty"`

	// XrayImages holds a JSON-serialized list of X-ray image references.
	XrayImages string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:PatientID" json:"invoices,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// XrayImageURLs deserializes the stored image list. The result is never
// nil; malformed stored data yields an empty list instead of an error so
// a bad row cannot fail a profile read.
func (p *Patient) XrayImageURLs() []string {
	if p.XrayImages == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.XrayImages), &urls); err != nil || urls == nil {
		return []string{}
	}
	return urls
}

// SetXrayImageURLs serializes the image list for storage.
func (p *Patient) SetXrayImageURLs(urls []string) error {
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	p.XrayImages = string(raw)
	return nil
}
