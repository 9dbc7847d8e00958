package mocks

import (
	"context"
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing
type MockAccountRepository struct {
	CreateFunc                func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc           func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Account, error)
	FindByVerifyTokenHashFunc func(ctx context.Context, hash string, now time.Time) (*domain.Account, error)
	FindByResetTokenHashFunc  func(ctx context.Context, hash string, now time.Time) (*domain.Account, error)
	UpdateFunc                func(ctx context.Context, account *domain.Account) error
	DeactivateFunc            func(ctx context.Context, id uint) error
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	// Default behavior: success
	return nil
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByVerifyTokenHash(ctx context.Context, hash string, now time.Time) (*domain.Account, error) {
	if m.FindByVerifyTokenHashFunc != nil {
		return m.FindByVerifyTokenHashFunc(ctx, hash, now)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*domain.Account, error) {
	if m.FindByResetTokenHashFunc != nil {
		return m.FindByResetTokenHashFunc(ctx, hash, now)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}
