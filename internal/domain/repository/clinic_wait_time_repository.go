package repository

import (
	"context"

	"clinic-portal-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicWaitTimeRepository interface {
	// Get returns nil when the singleton row has never been written.
	Get(ctx context.Context, db *gorm.DB) (*entity.ClinicWaitTime, error)
	// Upsert writes the singleton row, creating it on first write.
	Upsert(ctx context.Context, db *gorm.DB, record *entity.ClinicWaitTime) error
}
