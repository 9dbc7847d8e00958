package services

import (
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// LockoutConfig holds the login-throttling parameters
type LockoutConfig struct {
	MaxAttempts int
	Window      time.Duration
	Cooldown    time.Duration
}

// DefaultLockoutConfig returns the production defaults: ten attempts inside
// a rolling sixty-second window, then a one-hour lockout.
func DefaultLockoutConfig() LockoutConfig {
	return LockoutConfig{
		MaxAttempts: 10,
		Window:      time.Minute,
		Cooldown:    time.Hour,
	}
}

// LockoutDecision is the outcome of evaluating one login attempt
type LockoutDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// LockoutPolicy is the per-account login attempt state machine. Evaluate
// mutates the account's lockout fields; the caller persists them before
// acting on the credential check, so a crash between the two leaves the
// accounting consistent.
type LockoutPolicy struct {
	cfg LockoutConfig
}

// NewLockoutPolicy creates a lockout policy, filling zero config values
// with the defaults.
func NewLockoutPolicy(cfg LockoutConfig) *LockoutPolicy {
	def := DefaultLockoutConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &LockoutPolicy{cfg: cfg}
}

// Evaluate runs one login attempt through the state machine.
//
// A live lockout always wins over attempt counting. A lockout that has
// elapsed is cleared and the attempt treated as the first of a new window.
// Attempts within the window increment the counter until the threshold,
// where a cooldown is imposed. The counter is only ever reset by time, not
// by a successful password match.
func (p *LockoutPolicy) Evaluate(account *domain.Account, now time.Time) LockoutDecision {
	if account.LockedUntil != nil {
		if account.LockedUntil.After(now) {
			return LockoutDecision{Allowed: false, RetryAfter: account.LockedUntil.Sub(now)}
		}
		account.LockedUntil = nil
		account.LoginAttempts = 0
	}

	withinWindow := account.LastAttemptAt != nil && now.Sub(*account.LastAttemptAt) <= p.cfg.Window

	if withinWindow {
		if account.LoginAttempts < p.cfg.MaxAttempts {
			account.LoginAttempts++
			account.LastAttemptAt = &now
			return LockoutDecision{Allowed: true}
		}

		lockedUntil := now.Add(p.cfg.Cooldown)
		account.LockedUntil = &lockedUntil
		return LockoutDecision{Allowed: false, RetryAfter: p.cfg.Cooldown}
	}

	account.LoginAttempts = 1
	account.LastAttemptAt = &now
	return LockoutDecision{Allowed: true}
}
