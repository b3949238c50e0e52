package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/domain/entity"
	"clinic-portal-api/internal/domain/repository"
	"clinic-portal-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidResetToken = errors.New("invalid or expired token")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
)

const (
	resetTokenPrefix  = "reset_"
	minPasswordLength = 6
)

type PasswordResetUsecase interface {
	// RequestReset issues a fresh single-use token when the email matches
	// an account. It succeeds identically when it does not, so the
	// response cannot be used to probe which emails are registered.
	RequestReset(ctx context.Context, req *dto.RequestPasswordResetRequest) error

	// ResetPassword redeems a pending token exactly once, replacing the
	// credential hash. Wrong, expired, and already-used tokens all fail
	// with the same ErrInvalidResetToken.
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type passwordResetUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	notifier service.ResetNotifier
	sessions service.SessionStore
	audit    service.AuditService
	tokenTTL time.Duration
	now      func() time.Time
}

func NewPasswordResetUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notifier service.ResetNotifier,
	sessions service.SessionStore,
	audit service.AuditService,
	tokenTTL time.Duration,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		notifier: notifier,
		sessions: sessions,
		audit:    audit,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func newResetToken() string {
	return resetTokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, req *dto.RequestPasswordResetRequest) error {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		// Same outcome as the found case; do not reveal account absence.
		return nil
	}

	// Overwrites any prior pending token; at most one is live per user.
	token := newResetToken()
	user.SetPendingReset(token, u.now().Add(u.tokenTTL))

	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		// Tokens are unique across users; regenerate once on collision.
		if isDuplicateKeyError(err, "reset_token") {
			token = newResetToken()
			user.SetPendingReset(token, u.now().Add(u.tokenTTL))
			err = u.userRepo.Update(ctx, u.db, user)
		}
		if err != nil {
			u.log.Warnf("Failed to store reset token: %+v", err)
			return err
		}
	}

	if err := u.notifier.SendResetToken(ctx, user.Email, token); err != nil {
		u.log.Warnf("Failed to dispatch reset notification: %+v", err)
		return err
	}

	u.audit.Log(ctx, u.db, &user.ID, entity.AuditActionResetRequest, entity.JSON{
		"email": user.Email,
	})

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	// Length is checked before any lookup.
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	// The holder is read first only so sessions can be revoked after a
	// successful redemption; single-use enforcement comes entirely from
	// the conditional update below.
	holder, err := u.userRepo.FindByResetToken(ctx, u.db, req.Token)
	if err != nil {
		u.log.Warnf("Failed to find user by reset token: %+v", err)
		return err
	}
	if holder == nil {
		return ErrInvalidResetToken
	}

	rows, err := u.userRepo.ConsumeResetToken(ctx, u.db, req.Token, string(hashedPassword), u.now())
	if err != nil {
		u.log.Warnf("Failed to consume reset token: %+v", err)
		return err
	}
	if rows == 0 {
		// Expired, or another redemption of the same token won the race.
		return ErrInvalidResetToken
	}

	// The credential changed; existing sessions must not survive it.
	if err := u.sessions.RevokeAllForUser(ctx, holder.ID); err != nil {
		u.log.Warnf("Failed to revoke sessions after reset: %+v", err)
	}

	u.audit.Log(ctx, u.db, &holder.ID, entity.AuditActionResetRedeem, nil)

	return nil
}
