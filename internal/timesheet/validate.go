// Package timesheet records a user's dated hour entries against the
// client/project/activity catalog.
package timesheet

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Validation errors are checked before any network call is made.
var (
	ErrInvalidHours = errors.New("hours must be between 0.25 and 24 in 0.25 increments")
	ErrInvalidEmail = errors.New("invalid email address")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateHours reports whether h is a valid entry duration: in (0, 24] and
// an exact multiple of a quarter hour. Quarter multiples are exact in
// float64, so the modulo test is safe.
func ValidateHours(h float64) bool {
	return h > 0 && h <= 24 && math.Mod(h*4, 1) == 0
}

// ParseHours parses and validates an hours string from user input.
func ParseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	if !ValidateHours(h) {
		return 0, ErrInvalidHours
	}
	return h, nil
}

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Required reports whether s contains a non-blank value.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}
