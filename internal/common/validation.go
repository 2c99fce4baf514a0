package common

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Invalid("email", "required")
	}
	if !emailRegex.MatchString(email) {
		return Invalid("email", "malformed address")
	}
	return nil
}

func ValidateUsername(username string) error {
	n := len([]rune(strings.TrimSpace(username)))
	if n < 2 || n > 20 {
		return Invalid("username", "must be 2-20 characters")
	}
	return nil
}

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// ValidatePassword enforces the strength rule: at least 6 characters with
// at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return Invalid("password", "must be at least 6 characters")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return Invalid("password", "must contain a letter and a digit")
	}
	return nil
}
