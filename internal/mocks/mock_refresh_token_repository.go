package mocks

import (
	"context"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	SaveFunc      func(ctx context.Context, accountID uint, token string) error
	RedeemFunc    func(ctx context.Context, token string) (uint, error)
	RevokeAllFunc func(ctx context.Context, accountID uint) error
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

func (m *MockRefreshTokenRepository) Save(ctx context.Context, accountID uint, token string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, accountID, token)
	}
	return nil
}

func (m *MockRefreshTokenRepository) Redeem(ctx context.Context, token string) (uint, error) {
	if m.RedeemFunc != nil {
		return m.RedeemFunc(ctx, token)
	}
	// Default behavior: unknown token
	return 0, domain.ErrTokenInvalid
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, accountID uint) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, accountID)
	}
	return nil
}
