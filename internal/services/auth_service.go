package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// AuthConfig holds the session-lifecycle parameters
type AuthConfig struct {
	// BaseURL is prefixed to the verification and reset links sent by email.
	BaseURL string
	// VerifyTokenTTL bounds the email-verification token, default 24h.
	VerifyTokenTTL time.Duration
	// ResetTokenTTL bounds the password-reset token, default 10m.
	ResetTokenTTL time.Duration
	Lockout       LockoutConfig
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accounts    domain.AccountRepository
	refreshRepo domain.RefreshTokenRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	emailSvc    domain.EmailService
	lockout     *LockoutPolicy
	cfg         AuthConfig
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts domain.AccountRepository,
	refreshRepo domain.RefreshTokenRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	emailSvc domain.EmailService,
	cfg AuthConfig,
) *AuthServiceImpl {
	if cfg.VerifyTokenTTL <= 0 {
		cfg.VerifyTokenTTL = 24 * time.Hour
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = 10 * time.Minute
	}
	return &AuthServiceImpl{
		accounts:    accounts,
		refreshRepo: refreshRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		emailSvc:    emailSvc,
		lockout:     NewLockoutPolicy(cfg.Lockout),
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateSecretToken returns a random secret and its sha256 hex digest.
// Only the digest is persisted; the raw secret goes out by email.
func generateSecretToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, hashSecretToken(raw), nil
}

func hashSecretToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Signup implements domain.AuthService. The account is created unverified;
// a failed verification email is reported in the result but never rolls the
// account back.
func (s *AuthServiceImpl) Signup(ctx context.Context, name, email, password string) (*domain.SignupResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	email = normalizeEmail(email)

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrAccountExists
	}
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, tokenHash, err := generateSecretToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(s.cfg.VerifyTokenTTL)

	account := &domain.Account{
		Name:                 name,
		Email:                email,
		PasswordHash:         hashed,
		Role:                 domain.RoleUser,
		Photo:                domain.DefaultPhoto,
		Active:               true,
		VerifyTokenHash:      tokenHash,
		VerifyTokenExpiresAt: &expires,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	emailSent := true
	if err := s.emailSvc.SendVerification(account, s.verifyLink(rawToken)); err != nil {
		log.Printf("VERIFICATION_EMAIL_FAILED: account_id=%d email=%s error=%v", account.ID, account.Email, err)
		emailSent = false
	}

	return &domain.SignupResult{Account: account, EmailSent: emailSent}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, rawToken string) (*domain.Account, error) {
	if rawToken == "" {
		return nil, domain.ErrTokenInvalidOrExpired
	}

	account, err := s.accounts.FindByVerifyTokenHash(ctx, hashSecretToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrTokenInvalidOrExpired
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	account.Verified = true
	account.ClearVerifyToken()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to mark account verified: %w", err)
	}

	// Welcome mail is best-effort.
	if err := s.emailSvc.SendWelcome(account, s.cfg.BaseURL); err != nil {
		log.Printf("WELCOME_EMAIL_FAILED: account_id=%d email=%s error=%v", account.ID, account.Email, err)
	}

	return account, nil
}

// ResendVerification implements domain.AuthService. An unexpired existing
// token blocks reissue so the endpoint cannot be used to spam tokens.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	if account.Verified {
		return domain.ErrAlreadyVerified
	}
	if account.VerifyTokenExpiresAt != nil && account.VerifyTokenExpiresAt.After(s.now()) {
		return domain.ErrVerificationPending
	}

	rawToken, tokenHash, err := generateSecretToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.cfg.VerifyTokenTTL)
	account.VerifyTokenHash = tokenHash
	account.VerifyTokenExpiresAt = &expires

	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.emailSvc.SendVerification(account, s.verifyLink(rawToken)); err != nil {
		// Do not leave a token the user never received; it would block the
		// next resend until it expires.
		account.ClearVerifyToken()
		if uerr := s.accounts.Update(ctx, account); uerr != nil {
			log.Printf("VERIFY_TOKEN_CLEANUP_FAILED: account_id=%d error=%v", account.ID, uerr)
		}
		return domain.ErrEmailDelivery
	}

	return nil
}

// ValidateLoginAttempt implements domain.AuthService. Lockout accounting is
// persisted before the password verdict is returned, whatever the outcome.
func (s *AuthServiceImpl) ValidateLoginAttempt(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if !account.Verified {
		return nil, domain.ErrNotVerified
	}

	decision := s.lockout.Evaluate(account, s.now())
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to persist lockout state: %w", err)
	}
	if !decision.Allowed {
		return nil, &domain.TooManyAttemptsError{RetryAfter: decision.RetryAfter}
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

// Login implements domain.AuthService for an already-validated account
func (s *AuthServiceImpl) Login(ctx context.Context, account *domain.Account) (*domain.TokenPair, error) {
	accessToken, err := s.tokenSvc.IssueAccess(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.IssueRefresh(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshRepo.Save(ctx, account.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrTokenMissing
	}

	if _, err := s.tokenSvc.VerifyRefresh(refreshToken); err != nil {
		return domain.ErrTokenInvalid
	}

	if _, err := s.refreshRepo.Redeem(ctx, refreshToken); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// LogoutAll implements domain.AuthService. Any signature-valid refresh
// token identifies the account, ledger membership is not required.
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrTokenMissing
	}

	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	if err := s.refreshRepo.RevokeAll(ctx, claims.AccountID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}

// RefreshAccessToken implements domain.AuthService. The presented token is
// rotated: its ledger record is gone before the new pair exists, so a
// concurrent redeem of the same token fails.
func (s *AuthServiceImpl) RefreshAccessToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrTokenMissing
	}

	if _, err := s.tokenSvc.VerifyRefresh(refreshToken); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	accountID, err := s.refreshRepo.Redeem(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to redeem refresh token: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccess(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefresh, err := s.tokenSvc.IssueRefresh(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshRepo.Save(ctx, accountID, newRefresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// Authenticate implements domain.AuthService, the core of the protect
// middleware.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, accessToken string) (*domain.Account, error) {
	if accessToken == "" {
		return nil, domain.ErrNotAuthenticated
	}

	claims, err := s.tokenSvc.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountGone
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if !account.Active {
		return nil, domain.ErrAccountGone
	}

	if !account.Verified {
		return nil, domain.ErrNotVerified
	}

	if account.PasswordChangedAfter(claims.IssuedAt) {
		return nil, domain.ErrStalePassword
	}

	return account, nil
}

// ForgotPassword implements domain.AuthService. A reset token is never left
// half-issued: if the email cannot be dispatched the token fields are
// cleared again.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	rawToken, tokenHash, err := generateSecretToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.cfg.ResetTokenTTL)
	account.ResetTokenHash = tokenHash
	account.ResetTokenExpiresAt = &expires

	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(account, s.resetLink(rawToken)); err != nil {
		account.ClearResetToken()
		if uerr := s.accounts.Update(ctx, account); uerr != nil {
			log.Printf("RESET_TOKEN_CLEANUP_FAILED: account_id=%d error=%v", account.ID, uerr)
		}
		return domain.ErrEmailDelivery
	}

	return nil
}

// ResetPassword implements domain.AuthService. Returns a fresh access token
// so the caller is logged in right away.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error) {
	if rawToken == "" || newPassword == "" {
		return "", domain.ErrMissingFields
	}

	account, err := s.accounts.FindByResetTokenHash(ctx, hashSecretToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrTokenInvalidOrExpired
		}
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	if err := s.setPassword(account, newPassword); err != nil {
		return "", err
	}
	account.ClearResetToken()
	if err := s.accounts.Update(ctx, account); err != nil {
		return "", fmt.Errorf("failed to update account: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccess(account.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// UpdatePassword implements domain.AuthService
func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) (string, error) {
	if oldPassword == "" || newPassword == "" {
		return "", domain.ErrMissingFields
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrAccountGone
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	if !s.passwordSvc.Verify(account.PasswordHash, oldPassword) {
		return "", domain.ErrIncorrectPassword
	}

	if err := s.setPassword(account, newPassword); err != nil {
		return "", err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return "", fmt.Errorf("failed to update account: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccess(account.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Deactivate implements domain.AuthService, the soft delete behind the
// delete-me endpoint. Outstanding refresh tokens are revoked with it.
func (s *AuthServiceImpl) Deactivate(ctx context.Context, accountID uint) error {
	if err := s.accounts.Deactivate(ctx, accountID); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if err := s.refreshRepo.RevokeAll(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// setPassword re-hashes and backdates the change by one second so the
// access token issued in the same request does not read as stale.
func (s *AuthServiceImpl) setPassword(account *domain.Account, newPassword string) error {
	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	changedAt := s.now().Add(-time.Second)
	account.PasswordHash = hashed
	account.PasswordChangedAt = &changedAt
	return nil
}

func (s *AuthServiceImpl) verifyLink(rawToken string) string {
	return fmt.Sprintf("%s/auth/verify-email/%s", s.cfg.BaseURL, rawToken)
}

func (s *AuthServiceImpl) resetLink(rawToken string) string {
	return fmt.Sprintf("%s/auth/reset-password/%s", s.cfg.BaseURL, rawToken)
}
