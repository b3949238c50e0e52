package usecase

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

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
	ErrInvalidWaitTimeText = errors.New("wait time text must be 1-50 characters")
)

type ClinicUsecase interface {
	// GetWaitTime is world-readable; before the first write it returns an
	// empty record rather than an error.
	GetWaitTime(ctx context.Context) (*dto.WaitTimeResponse, error)

	// SetWaitTime replaces the singleton record and stamps its update
	// time. Role gating happens at the route; text bounds here.
	SetWaitTime(ctx context.Context, req *dto.UpdateWaitTimeRequest) (*dto.WaitTimeResponse, error)
}

type clinicUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	waitTimeRepo repository.ClinicWaitTimeRepository
	audit        service.AuditService
	now          func() time.Time
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	waitTimeRepo repository.ClinicWaitTimeRepository,
	audit service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:           db,
		log:          log,
		waitTimeRepo: waitTimeRepo,
		audit:        audit,
		now:          time.Now,
	}
}

func (u *clinicUsecase) GetWaitTime(ctx context.Context) (*dto.WaitTimeResponse, error) {
	record, err := u.waitTimeRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to get wait time: %+v", err)
		return nil, err
	}
	if record == nil {
		return &dto.WaitTimeResponse{}, nil
	}

	return &dto.WaitTimeResponse{
		Text:      record.Text,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (u *clinicUsecase) SetWaitTime(ctx context.Context, req *dto.UpdateWaitTimeRequest) (*dto.WaitTimeResponse, error) {
	// Rune count, matching the max=50 request validation.
	if length := utf8.RuneCountInString(req.Text); length == 0 || length > entity.WaitTimeTextMaxLength {
		return nil, ErrInvalidWaitTimeText
	}

	record := &entity.ClinicWaitTime{
		Text:      req.Text,
		UpdatedAt: u.now(),
	}

	if err := u.waitTimeRepo.Upsert(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to update wait time: %+v", err)
		return nil, err
	}

	var actorID *uuid.UUID
	if callerID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actorID = &callerID
	}
	u.audit.Log(ctx, u.db, actorID, entity.AuditActionWaitTimeUpdate, entity.JSON{
		"text": record.Text,
	})

	return &dto.WaitTimeResponse{
		Text:      record.Text,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
