package security

import "testing"

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "pw123" {
		t.Fatalf("unexpected hash %q", hash)
	}

	if !hasher.Verify("pw123", hash) {
		t.Fatalf("expected password to verify")
	}
	if hasher.Verify("other", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected salted hashes to differ")
	}
	if !hasher.Verify("pw123", first) || !hasher.Verify("pw123", second) {
		t.Fatalf("expected both hashes to verify the same password")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(4)

	if hasher.Verify("pw123", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
	if hasher.Verify("pw123", "") {
		t.Fatalf("expected empty hash to fail verification")
	}
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash with clamped cost: %v", err)
	}
	if !hasher.Verify("pw123", hash) {
		t.Fatalf("expected hash with clamped cost to verify")
	}
}
