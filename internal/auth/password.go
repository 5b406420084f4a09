package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"regexp"
	"unicode"
)

// Password scheme: hash = base64(SHA-256(password + salt)) with a
// random 16-byte base64 salt per user. A fresh salt is generated on
// every password change.

const saltBytes = 16

// Validation messages shown to clients.
const (
	ErrPasswordLen        = "password must have at least eight characters"
	ErrPasswordWhitespace = "password must not contain whitespace"
	ErrPasswordDigit      = "password must contain at least one digit"
	ErrPasswordUpper      = "password must have at least one uppercase letter"
	ErrPasswordSpecial    = "password must have at least one special character"
)

// GenerateSalt returns a new random salt, base64-encoded.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// HashPassword hashes a plaintext password with the given salt.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword recomputes the hash and compares in constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// ValidatePassword checks the registration password policy. It returns
// an empty string when the password is acceptable, otherwise the first
// violated rule.
func ValidatePassword(password string) string {
	runes := []rune(password)
	if len(runes) < 8 {
		return ErrPasswordLen
	}

	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsSpace(r):
			return ErrPasswordWhitespace
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	switch {
	case !hasDigit:
		return ErrPasswordDigit
	case !hasUpper:
		return ErrPasswordUpper
	case !hasSpecial:
		return ErrPasswordSpecial
	}
	return ""
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+_.%-]{1,256}@[a-zA-Z0-9-]{1,64}(\.[a-zA-Z0-9-]{1,25})+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
