package services

import (
	"testing"
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

func TestLockoutPolicy_FirstAttempt(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	account := &domain.Account{}
	now := time.Now()

	decision := policy.Evaluate(account, now)

	if !decision.Allowed {
		t.Fatal("expected first attempt to be allowed")
	}
	if account.LoginAttempts != 1 {
		t.Errorf("expected attempt count 1, got %d", account.LoginAttempts)
	}
	if account.LastAttemptAt == nil || !account.LastAttemptAt.Equal(now) {
		t.Error("expected last attempt time to be recorded")
	}
}

func TestLockoutPolicy_CountsWithinWindow(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	account := &domain.Account{}
	now := time.Now()

	for i := 0; i < 5; i++ {
		decision := policy.Evaluate(account, now.Add(time.Duration(i)*time.Second))
		if !decision.Allowed {
			t.Fatalf("attempt %d unexpectedly denied", i+1)
		}
	}

	if account.LoginAttempts != 5 {
		t.Errorf("expected attempt count 5, got %d", account.LoginAttempts)
	}
}

func TestLockoutPolicy_LocksAtThreshold(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	account := &domain.Account{}
	now := time.Now()

	// Ten attempts inside the window are allowed.
	for i := 0; i < 10; i++ {
		decision := policy.Evaluate(account, now.Add(time.Duration(i)*time.Second))
		if !decision.Allowed {
			t.Fatalf("attempt %d unexpectedly denied", i+1)
		}
	}

	// The eleventh trips the lockout.
	decision := policy.Evaluate(account, now.Add(11*time.Second))
	if decision.Allowed {
		t.Fatal("expected eleventh attempt to be denied")
	}
	if decision.RetryAfter != time.Hour {
		t.Errorf("expected one hour cooldown, got %v", decision.RetryAfter)
	}
	if account.LockedUntil == nil {
		t.Fatal("expected lockout expiry to be set")
	}
}

func TestLockoutPolicy_DeniesWhileLocked(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	now := time.Now()
	lockedUntil := now.Add(30 * time.Minute)
	account := &domain.Account{LockedUntil: &lockedUntil, LoginAttempts: 10}

	decision := policy.Evaluate(account, now)

	if decision.Allowed {
		t.Fatal("expected attempt during lockout to be denied")
	}
	if decision.RetryAfter != 30*time.Minute {
		t.Errorf("expected 30m remaining, got %v", decision.RetryAfter)
	}
}

func TestLockoutPolicy_ReopensAfterCooldown(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	now := time.Now()
	lockedUntil := now.Add(-time.Minute)
	lastAttempt := now.Add(-2 * time.Hour)
	account := &domain.Account{LockedUntil: &lockedUntil, LoginAttempts: 10, LastAttemptAt: &lastAttempt}

	decision := policy.Evaluate(account, now)

	if !decision.Allowed {
		t.Fatal("expected attempt after cooldown to be allowed")
	}
	if account.LockedUntil != nil {
		t.Error("expected elapsed lockout to be cleared")
	}
	if account.LoginAttempts != 1 {
		t.Errorf("expected attempt counter restarted at 1, got %d", account.LoginAttempts)
	}
}

func TestLockoutPolicy_WindowElapsedResetsCounter(t *testing.T) {
	policy := NewLockoutPolicy(DefaultLockoutConfig())
	now := time.Now()
	lastAttempt := now.Add(-2 * time.Minute)
	account := &domain.Account{LoginAttempts: 9, LastAttemptAt: &lastAttempt}

	decision := policy.Evaluate(account, now)

	if !decision.Allowed {
		t.Fatal("expected attempt outside the window to be allowed")
	}
	if account.LoginAttempts != 1 {
		t.Errorf("expected attempt counter reset to 1, got %d", account.LoginAttempts)
	}
}

func TestNewLockoutPolicy_ZeroConfigUsesDefaults(t *testing.T) {
	policy := NewLockoutPolicy(LockoutConfig{})

	if policy.cfg.MaxAttempts != 10 {
		t.Errorf("expected default max attempts 10, got %d", policy.cfg.MaxAttempts)
	}
	if policy.cfg.Window != time.Minute {
		t.Errorf("expected default window 60s, got %v", policy.cfg.Window)
	}
	if policy.cfg.Cooldown != time.Hour {
		t.Errorf("expected default cooldown 1h, got %v", policy.cfg.Cooldown)
	}
}
