package utils

import (
	"encoding/base64"
	"testing"
)

func TestEncryptDecryptPhoneRoundTrip(t *testing.T) {
	plain := "+16502530000"

	encoded, err := EncryptPhone(plain)
	if err != nil {
		t.Fatalf("EncryptPhone failed: %v", err)
	}
	if encoded == plain {
		t.Fatal("ciphertext equals plaintext")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("ciphertext is not valid base64: %v", err)
	}

	decrypted, err := DecryptPhone(raw)
	if err != nil {
		t.Fatalf("DecryptPhone failed: %v", err)
	}
	if decrypted != plain {
		t.Errorf("round trip = %q, want %q", decrypted, plain)
	}
}

func TestEncryptPhoneNonDeterministic(t *testing.T) {
	// GCM 随机 nonce，同一明文两次加密结果应不同
	a, err := EncryptPhone("+16502530000")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptPhone("+16502530000")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same phone should differ")
	}
}

func TestDecryptPhoneTruncatedCiphertext(t *testing.T) {
	if _, err := DecryptPhone([]byte("short")); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}

func TestHashPhoneDeterministic(t *testing.T) {
	a := HashPhone("+16502530000")
	b := HashPhone("+16502530000")
	if a != b {
		t.Error("hash should be deterministic")
	}
	if a == HashPhone("+16502530001") {
		t.Error("different phones should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
