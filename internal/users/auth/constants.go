// Copyright (c) 2026 Paddock. All rights reserved.

package auth

// # Registration Constraints

const (
	// UsernameMinLength is the minimum accepted username length.
	UsernameMinLength = 3

	// UsernameMaxLength mirrors the VARCHAR(45) column limit.
	UsernameMaxLength = 45

	// EmailMaxLength mirrors the VARCHAR(45) column limit.
	EmailMaxLength = 45

	// PasswordMinLength is the minimum accepted password length.
	// Bcrypt handles arbitrary lengths; the floor guards against trivial passwords.
	PasswordMinLength = 6

	// ProfileFieldMaxLength bounds the free-text profile fields
	// (favorite team, favorite driver).
	ProfileFieldMaxLength = 45

	// AvatarURLMaxLength mirrors the VARCHAR(255) column limit.
	AvatarURLMaxLength = 255
)
