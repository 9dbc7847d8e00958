package mocks

import (
	"fmt"
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueAccessFunc   func(accountID uint) (string, error)
	IssueRefreshFunc  func(accountID uint) (string, error)
	VerifyAccessFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshFunc func(token string) (*domain.TokenClaims, error)
	AccessTTLFunc     func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssueAccess(accountID uint) (string, error) {
	if m.IssueAccessFunc != nil {
		return m.IssueAccessFunc(accountID)
	}
	return fmt.Sprintf("access_%d", accountID), nil
}

func (m *MockTokenService) IssueRefresh(accountID uint) (string, error) {
	if m.IssueRefreshFunc != nil {
		return m.IssueRefreshFunc(accountID)
	}
	return fmt.Sprintf("refresh_%d", accountID), nil
}

func (m *MockTokenService) VerifyAccess(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) VerifyRefresh(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) AccessTTL() time.Duration {
	if m.AccessTTLFunc != nil {
		return m.AccessTTLFunc()
	}
	return 15 * time.Minute
}
