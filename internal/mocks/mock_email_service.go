package mocks

import (
	"github.com/ibrahim11elian/PeakBooker/domain"
)

// MockEmailService implements domain.EmailService for testing
type MockEmailService struct {
	SendVerificationFunc  func(account *domain.Account, link string) error
	SendPasswordResetFunc func(account *domain.Account, link string) error
	SendWelcomeFunc       func(account *domain.Account, link string) error
}

// NewMockEmailService creates a new MockEmailService with default behaviors
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (m *MockEmailService) SendVerification(account *domain.Account, link string) error {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(account, link)
	}
	return nil
}

func (m *MockEmailService) SendPasswordReset(account *domain.Account, link string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(account, link)
	}
	return nil
}

func (m *MockEmailService) SendWelcome(account *domain.Account, link string) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(account, link)
	}
	return nil
}
