package converter

import (
	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/domain/entity"
)

// PatientToProfileResponse converts a Patient entity + its User to the
// profile DTO. The X-ray list is deserialized defensively: a malformed
// stored value becomes an empty array, never a failed request.
func PatientToProfileResponse(patient *entity.Patient, user *entity.User) *dto.PatientProfileResponse {
	if patient == nil || user == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		ID:                  patient.ID,
		Email:               user.Email,
		FullName:            user.FullName,
		MedicalRecordNumber: patient.MedicalRecordNumber,
		PhoneNumber:         patient.PhoneNumber,
		DateOfBirth:         patient.DateOfBirth.Format("2006-01-02"),
		Gender:              patient.Gender,
		Address:             patient.Address,
		XrayImageURLs:       patient.XrayImageURLs(),
		CreatedAt:           patient.CreatedAt,
		UpdatedAt:           patient.UpdatedAt,
	}
}
