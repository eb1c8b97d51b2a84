// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 instead of an error when string parsing fails). This is
highly useful in API handler contexts parsing query parameters.

Entity identifiers are the exception: every route and payload id must go
through [ParseID], which rejects non-numeric and non-positive values before
any I/O. Ids are compared as int64 everywhere downstream — never as strings.
*/
package convert

import (
	"strconv"

	"github.com/paddockhq/paddock/internal/platform/apperr"
)

// ParseID normalizes an entity identifier from its wire representation.
//
// # Contract
//
// Every id crossing the HTTP boundary is parsed exactly once through this
// function. It returns a VALIDATION_ERROR AppError for empty, non-numeric,
// or non-positive input so that handlers fail before touching storage.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   "id",
			Message: "Must be a positive integer",
		})
	}
	return id, nil
}

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {

	// If the string is empty, return 0
	if s == "" {
		return 0
	}

	// Try to parse the string as an integer
	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {

	// If the string is empty, return false
	if s == "" {
		return false
	}

	// Try to parse the string as a boolean
	v, _ := strconv.ParseBool(s)
	return v
}
