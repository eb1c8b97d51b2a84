// Copyright (c) 2026 Paddock. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// Issue creates a signed JWT string for the given user ID.
	Issue(userID int64) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FavoriteTeam   string
	FavoriteDriver string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with the default role and active status,
then issues an access token so the client is logged in immediately.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Access token plus the created profile
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hashedPassword,
		FavoriteTeam:   input.FavoriteTeam,
		FavoriteDriver: input.FavoriteDriver,
		Role:           sec.RoleUser,
		Status:         sec.StatusActive,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	token, err := service.tokenProvider.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{AccessToken: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	AccessToken string
	User        *User
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity, performs constant-time password comparison,
rejects banned accounts, and records login audit fields.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - error: Unauthorized, Forbidden (banned) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	// Flexible login: look up by Email or Username
	user, err := service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Banned accounts are refused at the door, not just at the guard.
	if user.Status == sec.StatusBanned {
		return nil, apperr.Forbidden("Account is banned")
	}

	token, err := service.tokenProvider.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Audit stamp is best-effort: a failed counter update must not block login.
	if err := service.userRepository.RecordLogin(context, user.ID); err == nil {
		user.LoginCount++
	}

	return &AuthSession{AccessToken: token, User: user}, nil
}

// # Identity Resolution

/*
Profile returns the full account entity for the given user ID.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: Hydrated account entity
  - error: NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
LoadIdentity resolves a token subject into a live request identity.

Description: Backs the access guard. The account is re-read from storage on
every authenticated request so that bans and role changes take effect
immediately, without waiting for token expiry.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *sec.Identity: Live identity snapshot
  - error: NotFound when the account no longer exists
*/
func (service *Service) LoadIdentity(context context.Context, userID int64) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}
