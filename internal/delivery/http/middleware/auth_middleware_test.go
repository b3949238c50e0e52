package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-portal-api/internal/domain/entity"
	"clinic-portal-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCookieName = "clinic_session"

type stubVerifier struct {
	claims map[string]*jwt.Claims
}

func (v *stubVerifier) Verify(token string) (*jwt.Claims, error) {
	if c, ok := v.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

type stubSessions struct {
	live map[string]bool
}

func (s *stubSessions) key(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (s *stubSessions) SaveAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.live[s.key(userID, tokenID)] = true
	return nil
}

func (s *stubSessions) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return nil
}

func (s *stubSessions) AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	return s.live[s.key(userID, tokenID)], nil
}

func (s *stubSessions) RevokeAccessToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	delete(s.live, s.key(userID, tokenID))
	return nil
}

func (s *stubSessions) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return nil
}

func (s *stubSessions) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for k := range s.live {
		delete(s.live, k)
	}
	return nil
}

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByResetToken(ctx context.Context, db *gorm.DB, token string) (*entity.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) ConsumeResetToken(ctx context.Context, db *gorm.DB, token, passwordHash string, now time.Time) (int64, error) {
	return 0, nil
}

type gateFixture struct {
	middleware *AuthMiddleware
	verifier   *stubVerifier
	sessions   *stubSessions
	users      *stubUserRepo
	userID     uuid.UUID
}

// newGateFixture wires the middleware with one active patient user whose
// access token "good-token" has a live session.
func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	userID := uuid.New()
	active := true
	users := &stubUserRepo{users: map[uuid.UUID]*entity.User{
		userID: {
			ID:       userID,
			RoleID:   entity.RoleIDPatient,
			Email:    "amira@clinic.test",
			IsActive: &active,
		},
	}}

	verifier := &stubVerifier{claims: map[string]*jwt.Claims{
		"good-token": {
			UserID:    userID,
			Email:     "amira@clinic.test",
			RoleID:    entity.RoleIDPatient,
			TokenType: jwt.AccessToken,
			TokenID:   "tid-1",
		},
		"refresh-token": {
			UserID:    userID,
			TokenType: jwt.RefreshToken,
			TokenID:   "tid-2",
		},
	}}

	sessions := &stubSessions{live: map[string]bool{}}
	require.NoError(t, sessions.SaveAccessToken(context.Background(), userID, "tid-1", time.Minute))

	return &gateFixture{
		middleware: NewAuthMiddleware(verifier, sessions, nil, users, testCookieName),
		verifier:   verifier,
		sessions:   sessions,
		users:      users,
		userID:     userID,
	}
}

func okHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_NoCredential(t *testing.T) {
	f := newGateFixture(t)
	called := false

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_AcceptsSessionCookie(t *testing.T) {
	f := newGateFixture(t)
	called := false

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "good-token"})
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthenticate_AcceptsBearerHeader(t *testing.T) {
	f := newGateFixture(t)
	called := false

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthenticate_RejectsUnknownToken(t *testing.T) {
	f := newGateFixture(t)
	called := false

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_RejectsRefreshTokenAsCredential(t *testing.T) {
	f := newGateFixture(t)
	called := false

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer refresh-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_RejectsRevokedSession(t *testing.T) {
	f := newGateFixture(t)
	called := false
	require.NoError(t, f.sessions.RevokeAccessToken(context.Background(), f.userID, "tid-1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_RejectsDeactivatedUser(t *testing.T) {
	f := newGateFixture(t)
	called := false
	inactive := false
	f.users.users[f.userID].IsActive = &inactive

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_PopulatesContext(t *testing.T) {
	f := newGateFixture(t)

	var gotUserID uuid.UUID
	var gotRoleID int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotRoleID, _ = GetRoleIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.userID, gotUserID)
	assert.Equal(t, entity.RoleIDPatient, gotRoleID)
}
