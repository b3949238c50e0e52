package repository

import (
	"context"
	"errors"

	"clinic-portal-api/internal/domain/entity"
	domainRepo "clinic-portal-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clinicWaitTimeRepository struct{}

func NewClinicWaitTimeRepository() domainRepo.ClinicWaitTimeRepository {
	return &clinicWaitTimeRepository{}
}

func (r *clinicWaitTimeRepository) Get(ctx context.Context, db *gorm.DB) (*entity.ClinicWaitTime, error) {
	var record entity.ClinicWaitTime
	err := db.WithContext(ctx).Where("id = ?", entity.WaitTimeSingletonID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Upsert relies on the primary-key conflict so concurrent writers
// serialize on the single row.
func (r *clinicWaitTimeRepository) Upsert(ctx context.Context, db *gorm.DB, record *entity.ClinicWaitTime) error {
	record.ID = entity.WaitTimeSingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(record).Error
}
