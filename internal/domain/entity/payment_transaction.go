package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTransaction represents a single payment recorded against an invoice
type PaymentTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// Seq preserves insertion order for transactions recorded at the
	// same instant; transaction history sorts recorded_at desc, seq asc.
	Seq int64 `gorm:"autoIncrement;uniqueIndex;not null" json:"-"`

	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method     string          `gorm:"type:varchar(50);not null" json:"method"`
	Reference  string          `gorm:"type:varchar(100)" json:"reference,omitempty"`
	RecordedAt time.Time       `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
