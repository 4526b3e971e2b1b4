// Package security generates secrets handed out to account owners.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// TemporaryPasswordAlphabet omits characters that are easy to misread.
const TemporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const (
	minTemporaryPasswordLength = 8
	maxTemporaryPasswordTries  = 32
)

var (
	errNegativeLength      = errors.New("length must be non-negative")
	errEmptyAlphabet       = errors.New("alphabet must not be empty")
	errPasswordUnsatisfied = errors.New("could not generate a password with mixed character classes")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

// TemporaryPassword returns a random password of at least eight characters
// that contains an upper-case letter, a lower-case letter and a digit, so it
// satisfies the account password policy.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	for try := 0; try < maxTemporaryPasswordTries; try++ {
		candidate, err := RandomString(length, TemporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if hasMixedClasses(candidate) {
			return candidate, nil
		}
	}
	return "", errPasswordUnsatisfied
}

func hasMixedClasses(value string) bool {
	return strings.ContainsAny(value, "ABCDEFGHJKLMNPQRSTUVWXYZ") &&
		strings.ContainsAny(value, "abcdefghijkmnopqrstuvwxyz") &&
		strings.ContainsAny(value, "23456789")
}
