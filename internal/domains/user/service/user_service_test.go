package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"localbiz-backend/internal/domains/user"
	"localbiz-backend/pkg/jwt"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockRepo) SetStaff(ctx context.Context, id uuid.UUID, staff bool) error {
	return m.Called(ctx, id, staff).Error(0)
}

func (m *mockRepo) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func newService(repo *mockRepo) user.Service {
	return NewUserServiceWithCost(repo, jwt.NewManager("test-secret", time.Hour), bcrypt.MinCost)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	var created *user.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*user.User) }).
		Return(nil)

	u, err := svc.Register(context.Background(), user.RegisterRequest{
		Username:        "bob",
		Password:        "correct-horse-9",
		PasswordConfirm: "correct-horse-9",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "bob", u.Username)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, "correct-horse-9", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct-horse-9")))
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(user.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username:        "bob",
		Password:        "correct-horse-9",
		PasswordConfirm: "correct-horse-9",
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, user.ErrUsernameTaken, verrs["username"])
}

func TestRegisterInvalidSkipsRepository(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{Username: "bob", Password: "short"})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	id := uuid.New()
	active := &user.User{ID: id, Username: "carol", PasswordHash: hashed(t, "open-sesame-1"), IsActive: true}

	t.Run("success updates last login", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		repo.On("FindByUsername", mock.Anything, "carol").Return(active, nil)
		repo.On("UpdateLastLogin", mock.Anything, id, mock.AnythingOfType("time.Time")).Return(nil)

		u, err := svc.Authenticate(context.Background(), user.LoginRequest{Username: "carol", Password: "open-sesame-1"})
		require.NoError(t, err)
		assert.NotNil(t, u.LastLogin)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		repo.On("FindByUsername", mock.Anything, "carol").Return(active, nil)

		_, err := svc.Authenticate(context.Background(), user.LoginRequest{Username: "carol", Password: "nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, user.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), user.LoginRequest{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		inactive := *active
		inactive.IsActive = false
		repo.On("FindByUsername", mock.Anything, "carol").Return(&inactive, nil)

		_, err := svc.Authenticate(context.Background(), user.LoginRequest{Username: "carol", Password: "open-sesame-1"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		boom := errors.New("db down")
		repo.On("FindByUsername", mock.Anything, "carol").Return(nil, boom)

		_, err := svc.Authenticate(context.Background(), user.LoginRequest{Username: "carol", Password: "x"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestIssueToken(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{}
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := NewUserServiceWithCost(repo, tokens, bcrypt.MinCost)

	repo.On("FindByUsername", mock.Anything, "dave").
		Return(&user.User{ID: id, Username: "dave", PasswordHash: hashed(t, "pa55word-x"), IsActive: true, IsStaff: true}, nil)
	repo.On("UpdateLastLogin", mock.Anything, id, mock.Anything).Return(nil)

	resp, err := svc.IssueToken(context.Background(), user.LoginRequest{Username: "dave", Password: "pa55word-x"})
	require.NoError(t, err)
	assert.Equal(t, "dave", resp.User.Username)

	claims, err := tokens.ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.True(t, claims.Staff)
}

func TestGetByIDInactive(t *testing.T) {
	id := uuid.New()
	repo := &mockRepo{}
	svc := newService(repo)
	repo.On("FindByID", mock.Anything, id).Return(&user.User{ID: id, IsActive: false}, nil)

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestEnsureStaff(t *testing.T) {
	req := user.RegisterRequest{Username: "admin", Password: "Adm1n-secret", PasswordConfirm: "Adm1n-secret"}

	t.Run("creates new staff account", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newService(repo)
		repo.On("FindByUsername", mock.Anything, "admin").Return(nil, user.ErrUserNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool { return u.IsStaff && u.IsActive })).Return(nil)

		u, created, err := svc.EnsureStaff(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, u.IsStaff)
		repo.AssertExpectations(t)
	})

	t.Run("promotes existing account", func(t *testing.T) {
		id := uuid.New()
		repo := &mockRepo{}
		svc := newService(repo)
		repo.On("FindByUsername", mock.Anything, "admin").Return(&user.User{ID: id, Username: "admin", IsActive: true}, nil)
		repo.On("SetPassword", mock.Anything, id, mock.Anything).Return(nil)
		repo.On("SetStaff", mock.Anything, id, true).Return(nil)

		u, created, err := svc.EnsureStaff(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, u.IsStaff)
		repo.AssertExpectations(t)
	})
}
