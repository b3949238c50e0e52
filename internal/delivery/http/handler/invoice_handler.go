package handler

import (
	"encoding/json"
	"net/http"

	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/usecase"
	"clinic-portal-api/pkg/response"
	"clinic-portal-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	invoiceID, err := uuid.Parse(vars["invoiceId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		if err == usecase.ErrInvoiceNotFound {
			response.NotFound(w, "Invoice not found")
			return
		}
		response.InternalServerError(w, "Failed to get invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) ListInvoiceTransactions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	invoiceID, err := uuid.Parse(vars["invoiceId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	transactions, err := h.invoiceUsecase.ListTransactionsForInvoice(r.Context(), invoiceID)
	if err != nil {
		if err == usecase.ErrInvoiceNotFound {
			response.NotFound(w, "Invoice not found")
			return
		}
		response.InternalServerError(w, "Failed to list transactions")
		return
	}

	response.Success(w, http.StatusOK, "Transactions retrieved successfully", transactions)
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	invoiceID, err := uuid.Parse(vars["invoiceId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.RecordPayment(r.Context(), invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvalidPaymentAmount:
			response.Error(w, http.StatusBadRequest, "Payment amount must be positive", nil)
		case usecase.ErrInvoiceCancelled:
			response.Error(w, http.StatusBadRequest, "Invoice is cancelled", nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment recorded successfully", invoice)
}

// ListOwnInvoices lists the invoices of the patient linked to the
// authenticated caller.
func (h *InvoiceHandler) ListOwnInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceUsecase.ListInvoicesForCaller(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrNoAuthenticatedCaller:
			response.Unauthorized(w, "Authentication required")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to list invoices")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}
