package converter

import (
	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity to its response DTO.
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		PatientID:     invoice.PatientID,
		InvoiceNumber: invoice.InvoiceNumber,
		Description:   invoice.Description,
		Amount:        invoice.Amount,
		AmountPaid:    invoice.AmountPaid,
		Status:        string(invoice.Status),
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// InvoicesToListResponse converts invoices to the list DTO.
func InvoicesToListResponse(invoices []entity.Invoice) *dto.InvoiceListResponse {
	responses := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *InvoiceToResponse(&invoices[i]))
	}
	return &dto.InvoiceListResponse{
		Invoices: responses,
		Total:    len(responses),
	}
}

// TransactionToResponse converts a PaymentTransaction to its DTO.
func TransactionToResponse(tx *entity.PaymentTransaction) *dto.PaymentTransactionResponse {
	if tx == nil {
		return nil
	}

	return &dto.PaymentTransactionResponse{
		ID:         tx.ID,
		InvoiceID:  tx.InvoiceID,
		Amount:     tx.Amount,
		Method:     tx.Method,
		Reference:  tx.Reference,
		RecordedAt: tx.RecordedAt,
	}
}

// TransactionsToListResponse converts transactions to the list DTO,
// preserving the order they were fetched in.
func TransactionsToListResponse(transactions []entity.PaymentTransaction) *dto.PaymentTransactionListResponse {
	responses := make([]dto.PaymentTransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *TransactionToResponse(&transactions[i]))
	}
	return &dto.PaymentTransactionListResponse{
		Transactions: responses,
		Total:        len(responses),
	}
}
