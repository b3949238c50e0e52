package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfileResponse represents a patient's own profile. XrayImageURLs
// is always present as an array, never null.
type PatientProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	DateOfBirth         string    `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	Address             string    `json:"address,omitempty"`
	XrayImageURLs       []string  `json:"xray_image_urls"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
