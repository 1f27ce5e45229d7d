package user

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelagg/pkg/apperr"
	"travelagg/pkg/auth"
	"travelagg/pkg/db/dbtest"
	"travelagg/pkg/logger"
)

const testSecret = "test-secret-0123456789"

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return m.result(m.Called(ctx, username))
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return m.result(m.Called(ctx, email))
}

func (m *mockRepository) result(args mock.Arguments) (*User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func newTokenIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(testSecret, 30*time.Minute)
	require.NoError(t, err)
	return issuer
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewSQLRepository(dbtest.NewSQLite(t)), newTokenIssuer(t), logger.NewWithWriter("development", &bytes.Buffer{}))
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Status
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	reg, err := svc.Register(ctx, RegisterRequest{Username: " asha ", Email: "Asha@Example.com", Password: "secret123", FullName: "Asha Rao"})
	require.NoError(t, err)
	assert.Equal(t, TokenTypeBearer, reg.TokenType)
	assert.Equal(t, 1800, reg.ExpiresIn)
	assert.Equal(t, "asha", reg.User.Username)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.User.ID)

	claims, err := newTokenIssuer(t).Verify(reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Subject)
	assert.Equal(t, reg.User.ID, claims.UserID)

	login, err := svc.Login(ctx, LoginRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	me, err := svc.Me(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", me.FullName)
}

func TestService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "asha", Email: "new@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = svc.Register(ctx, RegisterRequest{Username: "new", Email: "ASHA@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestService_LoginRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "asha", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_MeUnknownUser(t *testing.T) {
	_, err := newTestService(t).Me(context.Background(), "ghost")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestService_OAuthSignIn(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Register(ctx, RegisterRequest{Username: "asha", Email: "someone@example.com", Password: "secret123"})
	require.NoError(t, err)

	first, err := svc.OAuthSignIn(ctx, "Asha@Gmail.com", "Asha Rao", "google")
	require.NoError(t, err)
	assert.Equal(t, "asha@gmail.com", first.User.Email)
	assert.Equal(t, "google", first.User.Provider)
	assert.NotEqual(t, "asha", first.User.Username, "taken usernames get a suffix")
	assert.Contains(t, first.User.Username, "asha-")

	again, err := svc.OAuthSignIn(ctx, "asha@gmail.com", "", "github")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID)

	// OAuth2 accounts have no password
	_, err = svc.Login(ctx, LoginRequest{Username: first.User.Username, Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.OAuthSignIn(ctx, " ", "", "github")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestService_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	repo.On("FindByUsername", ctx, "asha").Return(nil, errors.New("connection reset"))

	buf := &bytes.Buffer{}
	svc := NewService(repo, newTokenIssuer(t), logger.NewWithWriter("development", buf))

	_, err := svc.Login(ctx, LoginRequest{Username: "asha", Password: "secret123"})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Contains(t, buf.String(), "Failed to load user")

	_, err = svc.Register(ctx, RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	repo.AssertExpectations(t)
}

func TestService_RegisterRaceReportsConflict(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	repo.On("FindByUsername", ctx, "asha").Return(nil, ErrNotFound)
	repo.On("FindByEmail", ctx, "asha@example.com").Return(nil, ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(ErrUserExists)

	svc := NewService(repo, newTokenIssuer(t), logger.NewWithWriter("development", &bytes.Buffer{}))

	_, err := svc.Register(ctx, RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}
