package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-portal-api/internal/domain/repository"
	"clinic-portal-api/internal/service"
	"clinic-portal-api/pkg/jwt"
	"clinic-portal-api/pkg/response"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
	TokenIDKey   contextKey = "token_id"
)

// TokenVerifier validates a presented credential and yields the decoded
// identity. The JWT service implements it in production; tests inject a
// fake so the gate can be exercised without real cryptography.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	verifier   TokenVerifier
	sessions   service.SessionStore
	db         *gorm.DB
	userRepo   repository.UserRepository
	cookieName string
}

func NewAuthMiddleware(
	verifier TokenVerifier,
	sessions service.SessionStore,
	db *gorm.DB,
	userRepo repository.UserRepository,
	cookieName string,
) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		sessions:   sessions,
		db:         db,
		userRepo:   userRepo,
		cookieName: cookieName,
	}
}

// extractCredential reads the opaque session credential from the session
// cookie, falling back to an Authorization bearer header.
func (m *AuthMiddleware) extractCredential(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := m.extractCredential(r)
		if credential == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := m.verifier.Verify(credential)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Reject tokens revoked by logout or a password reset.
		exists, err := m.sessions.AccessTokenExists(r.Context(), claims.UserID, claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !exists {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		// Resolve the user from the store rather than trusting claims;
		// role changes and deactivations apply to live sessions.
		user, err := m.userRepo.FindByID(r.Context(), m.db, claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to resolve user")
			return
		}
		if user == nil || (user.IsActive != nil && !*user.IsActive) {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UserEmailKey, user.Email)
		ctx = context.WithValue(ctx, RoleIDKey, user.RoleID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetRoleIDFromContext extracts role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
