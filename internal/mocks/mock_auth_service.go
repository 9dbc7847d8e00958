package mocks

import (
	"context"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	SignupFunc               func(ctx context.Context, name, email, password string) (*domain.SignupResult, error)
	VerifyEmailFunc          func(ctx context.Context, rawToken string) (*domain.Account, error)
	ResendVerificationFunc   func(ctx context.Context, email string) error
	ValidateLoginAttemptFunc func(ctx context.Context, email, password string) (*domain.Account, error)
	LoginFunc                func(ctx context.Context, account *domain.Account) (*domain.TokenPair, error)
	LogoutFunc               func(ctx context.Context, refreshToken string) error
	LogoutAllFunc            func(ctx context.Context, refreshToken string) error
	RefreshAccessTokenFunc   func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	AuthenticateFunc         func(ctx context.Context, accessToken string) (*domain.Account, error)
	ForgotPasswordFunc       func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, rawToken, newPassword string) (string, error)
	UpdatePasswordFunc       func(ctx context.Context, accountID uint, oldPassword, newPassword string) (string, error)
	DeactivateFunc           func(ctx context.Context, accountID uint) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password string) (*domain.SignupResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, email, password)
	}
	return &domain.SignupResult{Account: &domain.Account{Name: name, Email: email}, EmailSent: true}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, rawToken string) (*domain.Account, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, rawToken)
	}
	return nil, domain.ErrTokenInvalidOrExpired
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.ResendVerificationFunc != nil {
		return m.ResendVerificationFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ValidateLoginAttempt(ctx context.Context, email, password string) (*domain.Account, error) {
	if m.ValidateLoginAttemptFunc != nil {
		return m.ValidateLoginAttemptFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Login(ctx context.Context, account *domain.Account) (*domain.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, account)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthService) LogoutAll(ctx context.Context, refreshToken string) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Account, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, accessToken)
	}
	return nil, domain.ErrNotAuthenticated
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, rawToken, newPassword)
	}
	return "", domain.ErrTokenInvalidOrExpired
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) (string, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, accountID, oldPassword, newPassword)
	}
	return "", domain.ErrIncorrectPassword
}

func (m *MockAuthService) Deactivate(ctx context.Context, accountID uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, accountID)
	}
	return nil
}
