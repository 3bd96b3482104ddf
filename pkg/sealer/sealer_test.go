package sealer

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var testKey = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", KeySize)))

func TestSealOpen(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}

	token, err := s.Seal("jo@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token is not URL safe: %s", token)
	}

	got, err := s.Open(token)
	if err != nil || got != "jo@x.com" {
		t.Fatalf("Open = %q, %v", got, err)
	}

	again, _ := s.Seal("jo@x.com")
	if again == token {
		t.Error("tokens should use a fresh nonce")
	}
}

func TestOpen_RejectsTampering(t *testing.T) {
	s, _ := New(testKey)
	other, _ := New(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("z", KeySize))))

	token, _ := s.Seal("jo@x.com")
	foreign, _ := other.Seal("jo@x.com")

	flipped := []byte(token)
	if flipped[len(flipped)-1] == 'A' {
		flipped[len(flipped)-1] = 'B'
	} else {
		flipped[len(flipped)-1] = 'A'
	}

	for name, tok := range map[string]string{
		"foreign key": foreign,
		"flipped":     string(flipped),
		"not base64":  "!!!",
		"too short":   "AAAA",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Open(tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNew_RejectsBadKeys(t *testing.T) {
	for _, key := range []string{"", "not base64!", base64.StdEncoding.EncodeToString([]byte("short"))} {
		if _, err := New(key); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}
