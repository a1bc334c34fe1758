package svtkerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNetworkScrubsSecretLikeParams(t *testing.T) {
	e := NewNetwork("https://api.example.com/v1/quote?symbol=AAPL&api_key=supersecret123", errors.New("timeout"))
	if got := e.Error(); strings.Contains(got, "supersecret123") {
		t.Fatalf("expected api_key to be scrubbed, got %q", got)
	}
	if !strings.Contains(e.Error(), "REDACTED") {
		t.Fatalf("expected redaction marker in %q", e.Error())
	}
}

func TestIsMatchesWrappedKind(t *testing.T) {
	inner := New(Decryption, "tag mismatch")
	wrapped := fmt.Errorf("load failed: %w", inner)
	if !Is(wrapped, Decryption) {
		t.Fatalf("expected Is to see through fmt.Errorf wrapping")
	}
	if Is(wrapped, Encryption) {
		t.Fatalf("expected Is to not match a different Kind")
	}
}

func TestUnsupportedVersionMessage(t *testing.T) {
	err := NewUnsupportedVersion(7)
	if got := err.Error(); got != "UnsupportedVersion: version 7" {
		t.Fatalf("unexpected message: %q", got)
	}
}
