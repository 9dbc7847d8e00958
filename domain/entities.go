package domain

import "time"

// Account roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultPhoto is assigned to accounts created without a profile picture.
const DefaultPhoto = "no-photo.jpg"

// Account represents a tour-booking user account
type Account struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Photo        string
	Verified     bool
	Active       bool

	// PasswordChangedAt is compared against token issuance time to force
	// re-login after a password change.
	PasswordChangedAt *time.Time

	// Email-verification token, one live token per account.
	VerifyTokenHash      string
	VerifyTokenExpiresAt *time.Time

	// Password-reset token, one live token per account.
	ResetTokenHash      string
	ResetTokenExpiresAt *time.Time

	// Lockout accounting, mutated only by the lockout policy.
	LoginAttempts int
	LastAttemptAt *time.Time
	LockedUntil   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClearVerifyToken removes the live email-verification token.
func (a *Account) ClearVerifyToken() {
	a.VerifyTokenHash = ""
	a.VerifyTokenExpiresAt = nil
}

// ClearResetToken removes the live password-reset token.
func (a *Account) ClearResetToken() {
	a.ResetTokenHash = ""
	a.ResetTokenExpiresAt = nil
}

// PasswordChangedAfter reports whether the password was changed after the
// given unix timestamp (a token's iat claim).
func (a *Account) PasswordChangedAfter(unixTime int64) bool {
	if a.PasswordChangedAt == nil {
		return false
	}
	return unixTime < a.PasswordChangedAt.Unix()
}

// TokenClaims represents verified token claims
type TokenClaims struct {
	AccountID uint
	IssuedAt  int64
	ExpiresAt int64
}

// TokenPair represents the credentials issued on login and refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// SignupResult represents signup outcome. EmailSent is false when the
// verification email could not be dispatched; the account is created anyway.
type SignupResult struct {
	Account   *Account
	EmailSent bool
}
