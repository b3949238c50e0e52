package repository

import (
	"context"
	"time"

	"clinic-portal-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	// FindByEmail looks a user up case-insensitively. Returns nil when no
	// user matches.
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindByResetToken returns the user holding the given pending reset
	// token regardless of expiry, or nil.
	FindByResetToken(ctx context.Context, db *gorm.DB, token string) (*entity.User, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error

	// ConsumeResetToken atomically replaces the credential hash and clears
	// the pending reset of the user whose token matches and whose expiry is
	// strictly after now. Returns the number of rows updated: 1 when the
	// token was redeemed, 0 when it was wrong, expired, or already used.
	ConsumeResetToken(ctx context.Context, db *gorm.DB, token, passwordHash string, now time.Time) (int64, error)
}
