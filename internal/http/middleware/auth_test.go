package middleware

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("secret", "surveyor", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	sub, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if sub != "surveyor" {
		t.Fatalf("subject = %q", sub)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _ := IssueToken("secret", "surveyor", time.Hour, time.Now())
	if _, err := ParseToken("other", token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, _ := IssueToken("secret", "surveyor", time.Minute, time.Now().Add(-time.Hour))
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatalf("expected expiry error")
	}
}
