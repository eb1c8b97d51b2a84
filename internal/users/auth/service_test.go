// Copyright (c) 2026 Paddock. All rights reserved.

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	users        map[int64]*auth.User
	nextID       int64
	loginRecords map[int64]int
	loginErr     error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		users:        map[int64]*auth.User{},
		nextID:       1,
		loginRecords: map[int64]int{},
	}
}

func (r *memoryUserRepository) seed(user *auth.User) *auth.User {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) UpdateRole(_ context.Context, id int64, role sec.UserRole) error {
	user, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.Role = role
	return nil
}

func (r *memoryUserRepository) UpdateStatus(_ context.Context, id int64, status sec.UserStatus) error {
	user, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.Status = status
	return nil
}

func (r *memoryUserRepository) RecordLogin(_ context.Context, id int64) error {
	if r.loginErr != nil {
		return r.loginErr
	}
	r.loginRecords[id]++
	return nil
}

func (r *memoryUserRepository) Stats(_ context.Context, _ int64) (*auth.Stats, error) {
	return &auth.Stats{}, nil
}

// stubTokenProvider returns a fixed token string.
type stubTokenProvider struct {
	token string
	err   error
}

func (p *stubTokenProvider) Issue(_ int64) (string, error) {
	return p.token, p.err
}

func newService(repo *memoryUserRepository) *auth.Service {
	return auth.NewService(repo, &stubTokenProvider{token: "signed-token"})
}

func seedMember(repo *memoryUserRepository, username, email, password string) *auth.User {
	hash, _ := sec.HashPassword(password)
	return repo.seed(&auth.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleUser,
		Status:       sec.StatusActive,
	})
}

// # Registration

/*
TestService_Register verifies the happy path: hashed password, default role,
active status and an immediate session token.
*/
func TestService_Register(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Username:     "max",
		Email:        "max@example.com",
		Password:     "secret-password",
		FavoriteTeam: "Red Bull",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	// 1. Session is usable immediately
	assert.Equal(t, "signed-token", session.AccessToken)

	// 2. Account defaults
	assert.Equal(t, sec.RoleUser, session.User.Role)
	assert.Equal(t, sec.StatusActive, session.User.Status)
	assert.Equal(t, "Red Bull", session.User.FavoriteTeam)

	// 3. Password is stored hashed, never in the clear
	assert.NotEqual(t, "secret-password", session.User.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret-password", session.User.PasswordHash))
}

/*
TestService_Register_Conflicts verifies that duplicate identities are refused
with a Conflict error naming the colliding field.
*/
func TestService_Register_Conflicts(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)
	seedMember(repo, "max", "max@example.com", "secret-password")

	tests := []struct {
		name     string
		input    auth.RegisterInput
		wantBody string
	}{
		{
			name:     "duplicate_email",
			input:    auth.RegisterInput{Username: "other", Email: "max@example.com", Password: "pw-123456"},
			wantBody: "Email is already registered",
		},
		{
			name:     "duplicate_username",
			input:    auth.RegisterInput{Username: "max", Email: "other@example.com", Password: "pw-123456"},
			wantBody: "Username is already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "CONFLICT", appError.Code)
			assert.Equal(t, tt.wantBody, appError.Message)
		})
	}
}

// # Login

/*
TestService_Login covers both login handles and the generic rejection message
used to prevent account enumeration.
*/
func TestService_Login(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)
	member := seedMember(repo, "charles", "charles@example.com", "secret-password")

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  string
	}{
		{"by_email", "charles@example.com", "secret-password", ""},
		{"by_username", "charles", "secret-password", ""},
		{"wrong_password", "charles", "nope", "Invalid login credentials"},
		{"unknown_account", "ghost", "secret-password", "Invalid login credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), auth.LoginInput{
				Login:    tt.login,
				Password: tt.password,
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "UNAUTHORIZED", appError.Code)
				assert.Equal(t, tt.wantErr, appError.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, member.ID, session.User.ID)
			assert.Equal(t, "signed-token", session.AccessToken)
		})
	}
}

/*
TestService_Login_Banned verifies that a banned account with correct
credentials is refused with Forbidden, not the generic Unauthorized.
*/
func TestService_Login_Banned(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)
	member := seedMember(repo, "nikita", "nikita@example.com", "secret-password")
	member.Status = sec.StatusBanned

	_, err := service.Login(context.Background(), auth.LoginInput{
		Login:    "nikita",
		Password: "secret-password",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
	assert.Equal(t, "Account is banned", appError.Message)
}

/*
TestService_Login_AuditStamp verifies that the login counter is bumped on
success, and that a failed stamp does not block the login itself.
*/
func TestService_Login_AuditStamp(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)
	member := seedMember(repo, "oscar", "oscar@example.com", "secret-password")

	// 1. Successful stamp increments the counter
	session, err := service.Login(context.Background(), auth.LoginInput{Login: "oscar", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, 1, session.User.LoginCount)
	assert.Equal(t, 1, repo.loginRecords[member.ID])

	// 2. Stamp failure is swallowed
	repo.loginErr = assert.AnError
	session, err = service.Login(context.Background(), auth.LoginInput{Login: "oscar", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, 1, session.User.LoginCount)
}

// # Identity Resolution

/*
TestService_LoadIdentity verifies the live identity projection used by the
access guard.
*/
func TestService_LoadIdentity(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newService(repo)
	member := seedMember(repo, "carlos", "carlos@example.com", "secret-password")
	member.Role = sec.RoleModerator

	identity, err := service.LoadIdentity(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, identity.ID)
	assert.Equal(t, "carlos", identity.Username)
	assert.Equal(t, sec.RoleModerator, identity.Role)
	assert.True(t, identity.IsStaff())

	_, err = service.LoadIdentity(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
