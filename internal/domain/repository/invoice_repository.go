package repository

import (
	"context"

	"clinic-portal-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error
	// FindByID returns nil when no invoice has the given ID.
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	// FindByIDForUpdate locks the invoice row for the duration of the
	// surrounding transaction, so concurrent payments against the same
	// invoice serialize instead of overwriting each other's totals.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *entity.Invoice) error
}
