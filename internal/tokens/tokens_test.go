package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/firetemplate/items-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateDevToken_VerifiesAndCarriesClaims(t *testing.T) {
	secret := "test-secret-32-bytes-should-be-long-enough"
	u := &models.Caller{UID: "user-123", Name: "Test User", Email: "test@example.com"}
	tokenStr, err := GenerateDevToken(secret, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateDevToken error: %v", err)
	}

	got, err := NewDevVerifier(secret).Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.UID != u.UID || got.Email != u.Email || got.Name != u.Name {
		t.Fatalf("unexpected caller: %+v", got)
	}
	if got.Source != "dev" {
		t.Fatalf("unexpected source: %q", got.Source)
	}
	if time.Until(got.ExpiresAt) <= 0 || time.Until(got.ExpiresAt) > 2*time.Minute {
		t.Fatalf("unexpected expiry: %v", got.ExpiresAt)
	}
}

func TestGenerateDevToken_RequiresSecretAndUID(t *testing.T) {
	if _, err := GenerateDevToken("", &models.Caller{UID: "u"}, time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := GenerateDevToken("s", &models.Caller{}, time.Minute); err == nil {
		t.Fatalf("expected error for empty uid")
	}
}

func TestVerify_Expired(t *testing.T) {
	secret := "another-secret-32-bytes-longgggg"
	tokenStr, err := GenerateDevToken(secret, &models.Caller{UID: "u2"}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateDevToken error: %v", err)
	}
	if _, err := NewDevVerifier(secret).Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	tokenStr, err := GenerateDevToken("secret-one-32-bytes-xxxxxxxxxxxxxxxx", &models.Caller{UID: "u3"}, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateDevToken error: %v", err)
	}
	if _, err := NewDevVerifier("different-secret-xxxxxxxxxxxxxxxx").Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected verify to fail with wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	if _, err := NewDevVerifier("x").Verify(context.Background(), "not.a.jwt"); err == nil {
		t.Fatalf("expected verify to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"items-api-dev","sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := NewDevVerifier("x").Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected verify to reject alg=none token")
	}
}

func TestVerify_MissingExpRejected(t *testing.T) {
	secret := "no-exp-secret-32-bytes-xxxxxxxxxx"
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iss": Issuer, "sub": "u4"})
	tok, err := jt.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewDevVerifier(secret).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected token without exp to be rejected")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	secret := "tamper-test-secret-32-bytes-xxxxxxx"
	tokenStr, err := GenerateDevToken(secret, &models.Caller{UID: "user-t"}, 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateDevToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payloadBytes), "user-t", "attacker", 1)))
	if _, err := NewDevVerifier(secret).Verify(context.Background(), strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
