package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// maxPasswordLength is bcrypt's input limit.
const maxPasswordLength = 72

// ValidatePassword rejects passwords outside the accepted length range.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if len(password) > maxPasswordLength {
		return apperrors.NewValidationError("password must be at most 72 characters", nil)
	}
	return nil
}

// HashPassword hashes a plaintext password. A cost outside bcrypt's range
// falls back to the default cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
