package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// bcrypt silently truncates beyond 72 bytes, so longer input is rejected.
const maxPasswordLength = 72

var (
	errEmptyPassword    = errors.New("password must not be empty")
	errOversizePassword = errors.New("password exceeds 72 bytes")
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service. A cost outside the
// bcrypt range falls back to the default of 10.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return "", errOversizePassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
