package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !h.Verify("s3cret", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestHasher_SaltUniqueness(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}
	second, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same input must differ")
	}
	if !h.Verify("same-input", first) || !h.Verify("same-input", second) {
		t.Fatalf("both hashes must verify against the original input")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher(bcrypt.DefaultCost)

	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.DefaultCost)

	// Verification failures must be silent booleans, never errors.
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must verify as false")
	}
	if h.Verify("anything", "") {
		t.Fatalf("empty hash must verify as false")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(999)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost extraction failed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", cost)
	}
}
