package auth

import (
	"strings"
	"testing"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(4) // low cost keeps the test fast

	hash, err := svc.Hash("Secret123")
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !svc.Verify(hash, "Secret123") {
		t.Error("expected verify to succeed for the original password")
	}
	if svc.Verify(hash, "Secret124") {
		t.Error("expected verify to fail for a different password")
	}
}

func TestPasswordService_HashProducesUniqueSalts(t *testing.T) {
	svc := NewPasswordService(4)

	first, err := svc.Hash("Secret123")
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}
	second, err := svc.Hash("Secret123")
	if err != nil {
		t.Fatalf("unexpected hash error: %v", err)
	}

	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestPasswordService_InvalidInput(t *testing.T) {
	svc := NewPasswordService(4)

	if _, err := svc.Hash(""); err == nil {
		t.Error("expected error for empty password")
	}
	if _, err := svc.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("expected error for oversize password")
	}
}

func TestPasswordService_VerifyMalformedDigest(t *testing.T) {
	svc := NewPasswordService(4)

	if svc.Verify("not-a-bcrypt-digest", "Secret123") {
		t.Error("expected verify to fail for malformed digest")
	}
}

func TestNewPasswordService_CostOutOfRange(t *testing.T) {
	// Out-of-range costs fall back to the default instead of failing later.
	svc := NewPasswordService(99).(*PasswordServiceImpl)
	if svc.cost != 10 {
		t.Errorf("expected default cost 10, got %d", svc.cost)
	}
}
