package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

func newTestJWTService() *JWTServiceImpl {
	return NewJWTService("access-secret", "refresh-secret", "peakbooker", 15*time.Minute, 7*24*time.Hour)
}

func TestJWTService_AccessRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.IssueAccess(42)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	claims, err := svc.VerifyAccess(token)
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("expected account id 42, got %d", claims.AccountID)
	}
	if claims.IssuedAt == 0 || claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("implausible iat/exp: %d/%d", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestJWTService_ClassesAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService()

	access, err := svc.IssueAccess(1)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}
	refresh, err := svc.IssueRefresh(1)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	if _, err := svc.VerifyRefresh(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid verifying access token as refresh, got %v", err)
	}
	if _, err := svc.VerifyAccess(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid verifying refresh token as access, got %v", err)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService()

	issuedAt := time.Now().Add(-time.Hour)
	svc.WithClock(func() time.Time { return issuedAt })

	token, err := svc.IssueAccess(7)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	svc.WithClock(time.Now)
	if _, err := svc.VerifyAccess(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.VerifyAccess(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService("other-secret", "other-refresh", "peakbooker", 15*time.Minute, 7*24*time.Hour)

	token, err := other.IssueAccess(3)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	if _, err := svc.VerifyAccess(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}
