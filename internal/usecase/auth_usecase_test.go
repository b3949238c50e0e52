package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-portal-api/config"
	"clinic-portal-api/internal/delivery/dto"
	"clinic-portal-api/internal/domain/entity"
	"clinic-portal-api/internal/service"
	"clinic-portal-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	usecase  *authUsecase
	users    *fakeUserRepo
	sessions *fakeSessionStore
	jwt      *jwt.JWTService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	log := testLogger()
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	uc := NewAuthUsecase(nil, log, users, &fakeRoleRepo{}, jwtService, sessions, service.NewAuditService(log, &fakeAuditRepo{}))

	return &authFixture{
		usecase:  uc.(*authUsecase),
		users:    users,
		sessions: sessions,
		jwt:      jwtService,
	}
}

func TestLogin_Succeeds(t *testing.T) {
	f := newAuthFixture(t)
	user := seedUser(f.users, "amira@clinic.test", "password123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "amira@clinic.test", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

	claims, err := f.jwt.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleIDPatient, claims.RoleID)

	stored, err := f.sessions.AccessTokenExists(context.Background(), user.ID, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, stored, "access session must be registered on login")
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	seedUser(f.users, "amira@clinic.test", "password123")

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "AMIRA@Clinic.Test", Password: "password123"})
	assert.NoError(t, err)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	seedUser(f.users, "amira@clinic.test", "password123")

	_, wrongPass := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "amira@clinic.test", Password: "not-it"})
	_, unknown := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "nobody@clinic.test", Password: "password123"})

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestLogin_InactiveAccountRejected(t *testing.T) {
	f := newAuthFixture(t)
	user := seedUser(f.users, "amira@clinic.test", "password123")
	inactive := false
	user.IsActive = &inactive
	require.NoError(t, f.users.Update(context.Background(), nil, user))

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "amira@clinic.test", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogout_RevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := seedUser(f.users, "amira@clinic.test", "password123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "amira@clinic.test", Password: "password123"})
	require.NoError(t, err)

	accessClaims, err := f.jwt.Verify(resp.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := f.jwt.Verify(resp.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(context.Background(), user.ID, accessClaims.TokenID, refreshClaims.TokenID))

	exists, err := f.sessions.AccessTokenExists(context.Background(), user.ID, accessClaims.TokenID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, f.sessions.count())
}

func TestGetCurrentUser_ResolvesRoleName(t *testing.T) {
	f := newAuthFixture(t)
	user := seedUser(f.users, "amira@clinic.test", "password123")

	resp, err := f.usecase.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, entity.RoleName(entity.RoleIDPatient), resp.Role)
}
