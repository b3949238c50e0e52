package handler

import (
	"encoding/json"
	"net/http"

	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/usecase"
	"clinic-portal-api/pkg/response"
	"clinic-portal-api/pkg/validator"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) GetWaitTime(w http.ResponseWriter, r *http.Request) {
	waitTime, err := h.clinicUsecase.GetWaitTime(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get wait time")
		return
	}

	response.Success(w, http.StatusOK, "Wait time retrieved successfully", waitTime)
}

func (h *ClinicHandler) SetWaitTime(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWaitTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	waitTime, err := h.clinicUsecase.SetWaitTime(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWaitTimeText:
			response.Error(w, http.StatusBadRequest, "Wait time text must be 1-50 characters", nil)
		default:
			response.InternalServerError(w, "Failed to update wait time")
		}
		return
	}

	response.Success(w, http.StatusOK, "Wait time updated successfully", waitTime)
}
