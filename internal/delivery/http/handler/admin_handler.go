package handler

import (
	"net/http"
	"strconv"

	"clinic-portal-api/internal/usecase"
	"clinic-portal-api/pkg/response"
)

type AdminHandler struct {
	auditUsecase usecase.AuditUsecase
}

func NewAdminHandler(auditUsecase usecase.AuditUsecase) *AdminHandler {
	return &AdminHandler{
		auditUsecase: auditUsecase,
	}
}

// ListAuditLogs returns the newest audit trail entries. The optional
// limit query parameter caps the page size.
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.auditUsecase.ListRecent(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
