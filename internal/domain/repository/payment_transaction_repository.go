package repository

import (
	"context"

	"clinic-portal-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentTransactionRepository interface {
	Create(ctx context.Context, db *gorm.DB, tx *entity.PaymentTransaction) error
	// FindByInvoiceID returns the invoice's transactions ordered by
	// recorded_at descending, insertion order for ties.
	FindByInvoiceID(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID) ([]entity.PaymentTransaction, error)
}
