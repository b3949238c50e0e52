package usecase

import (
	"context"

	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditUsecase interface {
	// ListRecent returns the newest audit entries, most recent first.
	ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditUsecase {
	return &auditUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditUsecase) ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, err := u.auditRepo.FindRecent(ctx, u.db, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	entries := make([]dto.AuditLogResponse, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, dto.AuditLogResponse{
			ID:        log.ID,
			UserID:    log.UserID,
			Action:    log.Action,
			Metadata:  map[string]interface{}(log.Metadata),
			CreatedAt: log.CreatedAt,
		})
	}

	return &dto.AuditLogListResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}
