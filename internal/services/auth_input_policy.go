package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrWeakPassword           = errors.New("weak password")
)

const (
	minPasswordRunes = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// NormalizeAuthEmail lowercases and trims an address. Anything that is not
// a bare address, including "Name <addr>" forms, normalizes to "".
func NormalizeAuthEmail(raw string) string {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	if candidate == "" {
		return ""
	}
	parsed, err := mail.ParseAddress(candidate)
	if err != nil || parsed.Address != candidate {
		return ""
	}
	return candidate
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// ValidatePasswordStrength requires at least eight runes, at most 72 bytes,
// and one each of upper case, lower case and digit.
func ValidatePasswordStrength(password string) error {
	if len(password) > maxPasswordBytes || len([]rune(password)) < minPasswordRunes {
		return ErrWeakPassword
	}
	classes := 0
	for _, present := range []func(rune) bool{unicode.IsUpper, unicode.IsLower, unicode.IsDigit} {
		if strings.IndexFunc(password, present) >= 0 {
			classes++
		}
	}
	if classes < 3 {
		return ErrWeakPassword
	}
	return nil
}
