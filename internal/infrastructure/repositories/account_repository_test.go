package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

func newTestAccountRepo(t *testing.T) domain.AccountRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DBAccount{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewAccountRepository(db)
}

func testAccount() *domain.Account {
	return &domain.Account{
		Name:         "Ann",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
		Photo:        domain.DefaultPhoto,
		Verified:     true,
		Active:       true,
	}
}

func TestAccountRepository_CreateAndFindByEmail(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	acc := testAccount()
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.ID == 0 {
		t.Error("expected generated id to be written back")
	}

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != acc.ID || found.Email != "a@x.com" {
		t.Errorf("unexpected account %+v", found)
	}
	if found.PasswordHash != "$2a$10$hash" {
		t.Errorf("unexpected password hash %s", found.PasswordHash)
	}
}

func TestAccountRepository_FindByEmailUnknown(t *testing.T) {
	repo := newTestAccountRepo(t)

	if _, err := repo.FindByEmail(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_DuplicateEmailRejected(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testAccount()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, testAccount()); err == nil {
		t.Error("expected unique index violation")
	}
}

func TestAccountRepository_DeactivatedHiddenFromEmailLookup(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	acc := testAccount()
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Deactivate(ctx, acc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByEmail(ctx, "a@x.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for deactivated account, got %v", err)
	}

	// Lookup by id still resolves so token-holders get the right verdict.
	found, err := repo.FindByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Active {
		t.Error("expected account to be inactive")
	}
}

func TestAccountRepository_FindByVerifyTokenHash(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()
	now := time.Now()

	expires := now.Add(time.Hour)
	acc := testAccount()
	acc.Verified = false
	acc.VerifyTokenHash = "verify-hash"
	acc.VerifyTokenExpiresAt = &expires
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByVerifyTokenHash(ctx, "verify-hash", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != acc.ID {
		t.Errorf("expected account %d, got %d", acc.ID, found.ID)
	}

	if _, err := repo.FindByVerifyTokenHash(ctx, "wrong-hash", now); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for wrong hash, got %v", err)
	}

	// Past the expiry the same hash no longer matches.
	if _, err := repo.FindByVerifyTokenHash(ctx, "verify-hash", now.Add(2*time.Hour)); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound after expiry, got %v", err)
	}
}

func TestAccountRepository_FindByResetTokenHash(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()
	now := time.Now()

	expires := now.Add(10 * time.Minute)
	acc := testAccount()
	acc.ResetTokenHash = "reset-hash"
	acc.ResetTokenExpiresAt = &expires
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByResetTokenHash(ctx, "reset-hash", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != acc.ID {
		t.Errorf("expected account %d, got %d", acc.ID, found.ID)
	}

	if _, err := repo.FindByResetTokenHash(ctx, "reset-hash", now.Add(time.Hour)); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound after expiry, got %v", err)
	}
}

func TestAccountRepository_UpdatePersistsClearedFields(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()
	now := time.Now()

	expires := now.Add(time.Hour)
	lastAttempt := now.Add(-time.Minute)
	acc := testAccount()
	acc.Verified = false
	acc.VerifyTokenHash = "verify-hash"
	acc.VerifyTokenExpiresAt = &expires
	acc.LoginAttempts = 7
	acc.LastAttemptAt = &lastAttempt
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acc.Verified = true
	acc.ClearVerifyToken()
	acc.LoginAttempts = 0
	acc.LastAttemptAt = nil
	if err := repo.Update(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Verified {
		t.Error("expected verified flag to be persisted")
	}
	if found.VerifyTokenHash != "" || found.VerifyTokenExpiresAt != nil {
		t.Error("expected cleared token fields to be persisted")
	}
	if found.LoginAttempts != 0 || found.LastAttemptAt != nil {
		t.Error("expected zeroed lockout state to be persisted")
	}
}

func TestAccountRepository_UpdateLockoutState(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()
	now := time.Now()

	acc := testAccount()
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lockedUntil := now.Add(time.Hour)
	acc.LoginAttempts = 10
	acc.LastAttemptAt = &now
	acc.LockedUntil = &lockedUntil
	if err := repo.Update(ctx, acc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.LoginAttempts != 10 {
		t.Errorf("expected 10 attempts, got %d", found.LoginAttempts)
	}
	if found.LockedUntil == nil {
		t.Error("expected lockout deadline to be persisted")
	}
}
