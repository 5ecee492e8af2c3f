package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"news-portal/internal/domain/entity"
)

var testSecret = []byte("test-secret-key-at-least-32-chars-long!")

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	fixed := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return fixed }

	issued, err := svc.Issue(&entity.User{ID: 42, Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.JTI == "" {
		t.Fatal("expected jti")
	}
	if !issued.ExpiresAt.Equal(fixed.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v", issued.ExpiresAt)
	}

	claims, err := svc.Parse(issued.Value)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != issued.JTI {
		t.Errorf("jti = %q, want %q", claims.ID, issued.JTI)
	}
	actor, err := claims.Actor()
	if err != nil {
		t.Fatalf("Actor: %v", err)
	}
	if actor != (entity.Actor{UserID: 42, Role: entity.RoleAdmin}) {
		t.Errorf("actor = %+v", actor)
	}
}

func TestTokenService_UniqueJTI(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	u := &entity.User{ID: 1, Role: entity.RoleUser}

	a, err := svc.Issue(u)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Issue(u)
	if err != nil {
		t.Fatal(err)
	}
	if a.JTI == b.JTI {
		t.Error("two tokens must not share a jti")
	}
}

func TestTokenService_Parse_Rejects(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	valid, err := svc.Issue(&entity.User{ID: 1, Role: entity.RoleUser})
	if err != nil {
		t.Fatal(err)
	}

	expired := NewTokenService(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(&entity.User{ID: 1, Role: entity.RoleUser})
	if err != nil {
		t.Fatal(err)
	}

	otherKey, err := NewTokenService([]byte("another-secret-key-at-least-32-chars"), time.Hour).
		Issue(&entity.User{ID: 1, Role: entity.RoleUser})
	if err != nil {
		t.Fatal(err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "role": "admin", "jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "expired", token: old.Value},
		{name: "wrong key", token: otherKey.Value},
		{name: "alg none", token: none},
		{name: "tampered", token: valid.Value[:len(valid.Value)-2] + "xx"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestClaims_Actor(t *testing.T) {
	tests := []struct {
		name    string
		claims  Claims
		wantErr bool
	}{
		{name: "user", claims: Claims{Role: "user", RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}}},
		{name: "non numeric subject", claims: Claims{Role: "user", RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}, wantErr: true},
		{name: "zero subject", claims: Claims{Role: "user", RegisteredClaims: jwt.RegisteredClaims{Subject: "0"}}, wantErr: true},
		{name: "unknown role", claims: Claims{Role: "viewer", RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.claims.Actor()
			if (err != nil) != tt.wantErr {
				t.Errorf("Actor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "invalid token") {
				t.Errorf("error %q should wrap ErrInvalidToken", err)
			}
		})
	}
}
