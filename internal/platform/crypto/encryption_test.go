package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected service to be configured")
	}

	plain := []byte("1234567890123456")
	encrypted, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if bytes.Equal(encrypted, plain) {
		t.Fatal("ciphertext must differ from plaintext")
	}

	decrypted, err := svc.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt error: %v", err)
	}
	if !bytes.Equal(decrypted, plain) {
		t.Fatalf("round trip mismatch: got %q", decrypted)
	}
}

func TestUnconfiguredPassThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}

	out, err := svc.Encrypt([]byte("value"))
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if string(out) != "value" {
		t.Fatalf("expected pass-through, got %q", out)
	}
}

func TestInvalidKeyLength(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("expected error for short key")
	}
}
