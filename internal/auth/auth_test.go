package auth

import (
	"strings"
	"testing"

	"taxatlas/internal/taxerr"
)

func TestVerifyPlaintext(t *testing.T) {
	v := NewVerifier("", "sekrit")

	if err := v.Verify("sekrit"); err != nil {
		t.Errorf("matching token should verify: %v", err)
	}
	if err := v.Verify("wrong"); !taxerr.Is(err, taxerr.AuthFailed) {
		t.Errorf("mismatch should yield AUTH_FAILED, got %v", err)
	}
	if err := v.Verify(""); !taxerr.Is(err, taxerr.AuthFailed) {
		t.Errorf("blank token should yield AUTH_FAILED, got %v", err)
	}
	if err := v.Verify("   "); !taxerr.Is(err, taxerr.AuthFailed) {
		t.Errorf("whitespace token should yield AUTH_FAILED, got %v", err)
	}
}

func TestVerifyHash(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashToken(token)
	if err != nil {
		t.Fatal(err)
	}

	v := NewVerifier(hash, "")
	if err := v.Verify(token); err != nil {
		t.Errorf("hashed token should verify: %v", err)
	}
	if err := v.Verify(token + "x"); !taxerr.Is(err, taxerr.AuthFailed) {
		t.Errorf("tampered token should fail, got %v", err)
	}
}

func TestVerifyUnconfigured(t *testing.T) {
	v := NewVerifier("", "")
	if v.Configured() {
		t.Error("empty verifier should report unconfigured")
	}
	if err := v.Verify("anything"); !taxerr.Is(err, taxerr.AuthFailed) {
		t.Errorf("unconfigured writes should fail, got %v", err)
	}
}

func TestErrorsDoNotLeakSecret(t *testing.T) {
	v := NewVerifier("", "supersecretvalue")
	err := v.Verify("wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "supersecretvalue") {
		t.Error("error message must not echo the expected token")
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("tokens should be unique")
	}
	if !strings.HasPrefix(a, TokenPrefix) {
		t.Errorf("token %q missing prefix", a)
	}
}

func TestMaskToken(t *testing.T) {
	token := TokenPrefix + "abcdef0123456789"
	masked := MaskToken(token)
	if strings.Contains(masked, "0123456789") {
		t.Errorf("mask leaks token body: %q", masked)
	}
	if MaskToken("short") != "****" {
		t.Error("short tokens should mask entirely")
	}
}
