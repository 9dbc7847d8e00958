package domain

import (
	"context"
	"time"
)

// AccountRepository defines account data access operations.
// Token lookups only return rows whose token expiry is after now; the
// active-account filter is applied explicitly by FindByEmail, never as an
// implicit query hook.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	FindByVerifyTokenHash(ctx context.Context, hash string, now time.Time) (*Account, error)
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Deactivate(ctx context.Context, id uint) error
}

// RefreshTokenRepository is the ledger of currently-valid refresh tokens.
// Redeem is an atomic find-and-delete: of two concurrent redeemers of the
// same token exactly one succeeds, the other gets ErrTokenInvalid.
type RefreshTokenRepository interface {
	Save(ctx context.Context, accountID uint, token string) error
	Redeem(ctx context.Context, token string) (uint, error)
	RevokeAll(ctx context.Context, accountID uint) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies access and refresh tokens. The two token
// classes use separate secrets and are not interchangeable.
type TokenService interface {
	IssueAccess(accountID uint) (string, error)
	IssueRefresh(accountID uint) (string, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// EmailService dispatches transactional email
type EmailService interface {
	SendVerification(account *Account, link string) error
	SendPasswordReset(account *Account, link string) error
	SendWelcome(account *Account, link string) error
}

// AuthService defines the session-lifecycle business logic
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*SignupResult, error)
	VerifyEmail(ctx context.Context, rawToken string) (*Account, error)
	ResendVerification(ctx context.Context, email string) error

	// ValidateLoginAttempt runs the lockout policy and the credential check;
	// Login issues tokens for an already-validated account.
	ValidateLoginAttempt(ctx context.Context, email, password string) (*Account, error)
	Login(ctx context.Context, account *Account) (*TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, refreshToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Authenticate resolves an access token to a live, verified account.
	Authenticate(ctx context.Context, accessToken string) (*Account, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) (string, error)
	UpdatePassword(ctx context.Context, accountID uint, oldPassword, newPassword string) (string, error)
	Deactivate(ctx context.Context, accountID uint) error
}
