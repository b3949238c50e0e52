package handler

import (
	"net/http"

	"clinic-portal-api/internal/usecase"
	"clinic-portal-api/pkg/response"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
	}
}

// GetSelfProfile returns the authenticated patient's own record. The
// xray_image_urls field is always an array in the response.
func (h *PatientHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.patientUsecase.GetSelfProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrNoAuthenticatedCaller:
			response.Unauthorized(w, "Authentication required")
		case usecase.ErrUserNotFound, usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}
