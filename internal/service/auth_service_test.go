package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Varshith2802/ip-reputation-checker/internal/models"
	"github.com/Varshith2802/ip-reputation-checker/internal/repository"
	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
)

type mockUserRepo struct {
	users            map[string]*models.User
	existsErr        error
	createErr        error
	findErr          error
	lastLoginUpdated bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	user, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.users[username]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	user.ID = "generated"
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:      "test-secret",
		TokenExpiry: 30 * time.Minute,
	})
}

func TestRegisterSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	err := svc.Register(context.Background(), models.CredentialsRequest{Username: "alice_1", Password: "Sup3rSecret"})
	require.NoError(t, err)

	stored := repo.users["alice_1"]
	require.NotNil(t, stored)
	assert.Nil(t, stored.LastLogin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Sup3rSecret")))
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	require.NoError(t, svc.Register(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"}))

	err := svc.Register(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"})
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestRegisterDuplicateInsertRace(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = repository.ErrDuplicateUsername
	svc := newTestAuthService(repo)

	err := svc.Register(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"})
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"username too short", "ab", "Sup3rSecret"},
		{"username bad charset", "alice!", "Sup3rSecret"},
		{"password too short", "alice", "Ab1"},
		{"password missing uppercase", "alice", "sup3rsecret"},
		{"password missing lowercase", "alice", "SUP3RSECRET"},
		{"password missing digit", "alice", "SuperSecret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestAuthService(newMockUserRepo())
			err := svc.Register(context.Background(), models.CredentialsRequest{Username: tc.username, Password: tc.password})
			appErr := appErrors.FromError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"}))

	res, err := svc.Login(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.True(t, repo.lastLoginUpdated)

	subject, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Sup3rSecret"}))

	_, wrongPassword := svc.Login(context.Background(), models.CredentialsRequest{Username: "alice", Password: "Wr0ngSecret"})
	_, unknownUser := svc.Login(context.Background(), models.CredentialsRequest{Username: "nobody99", Password: "Sup3rSecret"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, appErrors.FromError(wrongPassword), appErrors.FromError(unknownUser))
}

func TestValidateTokenExpired(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:      "test-secret",
		TokenExpiry: -time.Minute,
	})

	token, err := svc.generateAccessToken("alice")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newTestAuthService(newMockUserRepo())
	token, err := issuer.generateAccessToken("alice")
	require.NoError(t, err)

	verifier := NewAuthService(newMockUserRepo(), validator.New(), zap.NewNop(), AuthConfig{
		Secret:      "other-secret",
		TokenExpiry: 30 * time.Minute,
	})
	_, err = verifier.ValidateToken(token)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateTokenMissingSubject(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())
	_, err := svc.ValidateToken("not-a-token")
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
