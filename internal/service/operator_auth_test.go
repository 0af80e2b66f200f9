package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func hashOperatorKey(t *testing.T, key string) string {
	t.Helper()
	raw, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	return string(raw)
}

func TestOperatorAuthIssueToken(t *testing.T) {
	jwtSvc := NewJWTService("secret", time.Hour)

	t.Run("disabled without hash", func(t *testing.T) {
		auth := NewOperatorAuth("", jwtSvc)
		if auth.Enabled() {
			t.Fatalf("expected auth disabled")
		}
		if _, err := auth.IssueToken("op", "key"); !errors.Is(err, ErrOperatorAuthDisabled) {
			t.Fatalf("expected ErrOperatorAuthDisabled, got %v", err)
		}
	})

	t.Run("nil receiver disabled", func(t *testing.T) {
		var auth *OperatorAuth
		if _, err := auth.IssueToken("op", "key"); !errors.Is(err, ErrOperatorAuthDisabled) {
			t.Fatalf("expected ErrOperatorAuthDisabled, got %v", err)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		auth := NewOperatorAuth(hashOperatorKey(t, "rahasia"), jwtSvc)
		if _, err := auth.IssueToken("op", "salah"); !errors.Is(err, ErrOperatorKeyInvalid) {
			t.Fatalf("expected ErrOperatorKeyInvalid, got %v", err)
		}
	})

	t.Run("default operator id", func(t *testing.T) {
		auth := NewOperatorAuth(hashOperatorKey(t, "rahasia"), jwtSvc)
		token, err := auth.IssueToken("", "rahasia")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		claims, err := jwtSvc.ParseAccessToken(token.AccessToken)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if claims.OperatorID != "operator" {
			t.Fatalf("expected default operator id, got %q", claims.OperatorID)
		}
	})
}
