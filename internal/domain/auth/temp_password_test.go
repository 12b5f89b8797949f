package auth

import (
	"strings"
	"testing"
)

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password, err := GenerateTempPassword()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(password) != tempPasswordLength {
			t.Fatalf("expected %d characters, got %d", tempPasswordLength, len(password))
		}
		if !strings.ContainsAny(password, lowerChars) {
			t.Fatalf("missing lowercase in %q", password)
		}
		if !strings.ContainsAny(password, upperChars) {
			t.Fatalf("missing uppercase in %q", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Fatalf("missing digit in %q", password)
		}
		if !strings.ContainsAny(password, symbolChars) {
			t.Fatalf("missing symbol in %q", password)
		}
		if seen[password] {
			t.Fatalf("password repeated: %q", password)
		}
		seen[password] = true
	}
}
