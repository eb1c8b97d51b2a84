// Copyright (c) 2026 Paddock. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired indicates a structurally valid token past its expiry.
//
// The distinction from a malformed token exists purely for user messaging;
// both outcomes are treated as unauthenticated by the access guard.
var ErrTokenExpired = errors.New("sec: token expired")

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Minimal Claims
//
// Only the user id travels inside the token. Role and status are loaded
// fresh from the store on every guarded request, so a ban or demotion takes
// effect immediately rather than at the next token issuance.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is the numeric account id, abbreviated to keep the payload small.
	UserID int64 `json:"uid"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// It is a pure function over its signing secret: no per-call state, safe for
// concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a signed access token for the given user id.
func (service *TokenService) Issue(userID int64) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a JWT string.
//
// Expired tokens return [ErrTokenExpired]; every other failure is reported
// as a generic invalid-token error.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.UserID <= 0 {
		return nil, fmt.Errorf("sec: token carries no user id")
	}

	return claims, nil
}
