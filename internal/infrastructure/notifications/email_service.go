package notifications

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// SMTPEmailService implements domain.EmailService using gomail
type SMTPEmailService struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// NewEmailService creates a new SMTP email service. With an empty host the
// service logs messages instead of sending, for local development.
func NewEmailService(host string, port int, username, password, from string) domain.EmailService {
	return &SMTPEmailService{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		enabled: host != "",
	}
}

// SendVerification implements domain.EmailService
func (s *SMTPEmailService) SendVerification(account *domain.Account, link string) error {
	body := fmt.Sprintf(`
		<h3>Welcome to PeakBooker, %s!</h3>
		<p>Please confirm your email address by following this link:</p>
		<p><a href="%s">%s</a></p>
		<p>The link is valid for 24 hours. If you did not create an account, you can ignore this email.</p>
	`, account.Name, link, link)

	return s.send(account.Email, "Confirm your email address", body)
}

// SendPasswordReset implements domain.EmailService
func (s *SMTPEmailService) SendPasswordReset(account *domain.Account, link string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>If you forgot your password you can reset it from here:</p>
		<p><a href="%s">%s</a></p>
		<p>If you did not request this change, please ignore this email.</p>
	`, link, link)

	return s.send(account.Email, "Password reset token (valid for 10 min)", body)
}

// SendWelcome implements domain.EmailService
func (s *SMTPEmailService) SendWelcome(account *domain.Account, link string) error {
	body := fmt.Sprintf(`
		<h2>Welcome aboard, %s!</h2>
		<p>Your email address is confirmed and your account is ready.</p>
		<p>Start exploring tours here: <a href="%s">%s</a></p>
		<p>Best regards,<br>The PeakBooker Team</p>
	`, account.Name, link, link)

	return s.send(account.Email, "Welcome to PeakBooker!", body)
}

func (s *SMTPEmailService) send(to, subject, body string) error {
	// If SMTP is not configured, log instead of sending
	if !s.enabled {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
