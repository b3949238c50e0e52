package repository

import (
	"context"

	"clinic-portal-api/internal/domain/entity"
	domainRepo "clinic-portal-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentTransactionRepository struct{}

func NewPaymentTransactionRepository() domainRepo.PaymentTransactionRepository {
	return &paymentTransactionRepository{}
}

func (r *paymentTransactionRepository) Create(ctx context.Context, db *gorm.DB, tx *entity.PaymentTransaction) error {
	return db.WithContext(ctx).Create(tx).Error
}

func (r *paymentTransactionRepository) FindByInvoiceID(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID) ([]entity.PaymentTransaction, error) {
	var transactions []entity.PaymentTransaction
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("recorded_at DESC, seq ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
