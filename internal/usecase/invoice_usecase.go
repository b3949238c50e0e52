package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-portal-api/internal/converter"
	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/delivery/http/middleware"
	"clinic-portal-api/internal/domain/entity"
	"clinic-portal-api/internal/domain/repository"
	"clinic-portal-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceCancelled      = errors.New("invoice is cancelled")
	ErrInvalidPaymentAmount  = errors.New("payment amount must be positive")
	ErrNoAuthenticatedCaller = errors.New("user not found in context")
)

type InvoiceUsecase interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)

	// ListTransactionsForInvoice checks the invoice exists before listing;
	// an unknown invoice is a not-found failure, never an empty list.
	// Transactions come back most recent first.
	ListTransactionsForInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.PaymentTransactionListResponse, error)

	// ListInvoicesForCaller lists invoices of the patient record linked to
	// the authenticated caller only; one user cannot list another's.
	ListInvoicesForCaller(ctx context.Context) (*dto.InvoiceListResponse, error)

	RecordPayment(ctx context.Context, invoiceID uuid.UUID, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error)
}

type invoiceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	invoiceRepo repository.InvoiceRepository
	txRepo      repository.PaymentTransactionRepository
	patientRepo repository.PatientRepository
	audit       service.AuditService
	now         func() time.Time
	transact    func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	txRepo repository.PaymentTransactionRepository,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) InvoiceUsecase {
	u := &invoiceUsecase{
		db:          db,
		log:         log,
		invoiceRepo: invoiceRepo,
		txRepo:      txRepo,
		patientRepo: patientRepo,
		audit:       audit,
		now:         time.Now,
	}
	u.transact = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return u.db.WithContext(ctx).Transaction(fn)
	}
	return u
}

func (u *invoiceUsecase) GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) ListTransactionsForInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.PaymentTransactionListResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, u.db, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	transactions, err := u.txRepo.FindByInvoiceID(ctx, u.db, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to list transactions: %+v", err)
		return nil, err
	}

	return converter.TransactionsToListResponse(transactions), nil
}

func (u *invoiceUsecase) ListInvoicesForCaller(ctx context.Context) (*dto.InvoiceListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoAuthenticatedCaller
	}

	patient, err := u.patientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	invoices, err := u.invoiceRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, err
	}

	return converter.InvoicesToListResponse(invoices), nil
}

func (u *invoiceUsecase) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	// The invoice row is locked for the whole transaction so two payments
	// recorded at once serialize; without the lock both would read the
	// same amount_paid and the second commit would drop the first.
	var invoice *entity.Invoice
	err := u.transact(ctx, func(tx *gorm.DB) error {
		locked, err := u.invoiceRepo.FindByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrInvoiceNotFound
		}
		if locked.IsCancelled() {
			return ErrInvoiceCancelled
		}

		payment := &entity.PaymentTransaction{
			InvoiceID:  locked.ID,
			Amount:     req.Amount,
			Method:     req.Method,
			Reference:  req.Reference,
			RecordedAt: u.now(),
		}

		if err := u.txRepo.Create(ctx, tx, payment); err != nil {
			if isForeignKeyError(err, "invoice") {
				return ErrInvoiceNotFound
			}
			return err
		}

		locked.ApplyPayment(req.Amount)
		if err := u.invoiceRepo.Update(ctx, tx, locked); err != nil {
			return err
		}

		invoice = locked
		return nil
	})
	if err != nil {
		switch err {
		case ErrInvoiceNotFound, ErrInvoiceCancelled:
			return nil, err
		}
		u.log.Warnf("Failed to record payment: %+v", err)
		return nil, err
	}

	var actorID *uuid.UUID
	if callerID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actorID = &callerID
	}
	u.audit.Log(ctx, u.db, actorID, entity.AuditActionPaymentRecord, entity.JSON{
		"invoice_id": invoice.ID.String(),
		"amount":     req.Amount.String(),
	})

	return converter.InvoiceToResponse(invoice), nil
}
